package memory

import (
	"context"

	"github.com/osse101/Bossforge_Go/internal/domain"
)

// CatalogRepository implements repository.Catalog
type CatalogRepository struct {
	s *Store
}

func (r *CatalogRepository) CreateBoss(ctx context.Context, boss *domain.Boss) error {
	return r.s.write(ctx, func(d *data) error {
		boss.ID = d.next("bosses")
		d.bosses[boss.ID] = *boss
		return nil
	})
}

func (r *CatalogRepository) GetBoss(_ context.Context, id int64) (*domain.Boss, error) {
	var (
		b  domain.Boss
		ok bool
	)
	r.s.read(func(d *data) { b, ok = d.bosses[id] })
	if !ok {
		return nil, domain.ErrBossNotFound
	}
	return &b, nil
}

func (r *CatalogRepository) ListBosses(context.Context) ([]domain.Boss, error) {
	var out []domain.Boss
	r.s.read(func(d *data) { out = sortedValues(d.bosses, func(b domain.Boss) int64 { return b.ID }) })
	return out, nil
}

func (r *CatalogRepository) CreatePhase(ctx context.Context, phase *domain.Phase) error {
	return r.s.write(ctx, func(d *data) error {
		if phase.BossID != nil {
			if _, ok := d.bosses[*phase.BossID]; !ok {
				return domain.ErrBossNotFound
			}
		}
		phase.ID = d.next("phases")
		d.phases[phase.ID] = *phase
		return nil
	})
}

func (r *CatalogRepository) GetPhase(_ context.Context, id int64) (*domain.Phase, error) {
	var p *domain.Phase
	r.s.read(func(d *data) { p = getPhase(d, id) })
	if p == nil {
		return nil, domain.ErrPhaseNotFound
	}
	return p, nil
}

func (r *CatalogRepository) ListPhases(context.Context) ([]domain.Phase, error) {
	var out []domain.Phase
	r.s.read(func(d *data) { out = sortedValues(d.phases, func(p domain.Phase) int64 { return p.ID }) })
	return out, nil
}

func (r *CatalogRepository) CreateRarity(ctx context.Context, rarity *domain.Rarity) error {
	return r.s.write(ctx, func(d *data) error {
		for _, other := range d.rarities {
			if other.Name == rarity.Name {
				return domain.ErrDuplicate
			}
		}
		rarity.ID = d.next("rarities")
		d.rarities[rarity.ID] = *rarity
		return nil
	})
}

func (r *CatalogRepository) GetRarity(_ context.Context, id int64) (*domain.Rarity, error) {
	var (
		rr domain.Rarity
		ok bool
	)
	r.s.read(func(d *data) { rr, ok = d.rarities[id] })
	if !ok {
		return nil, domain.ErrRarityNotFound
	}
	return &rr, nil
}

func (r *CatalogRepository) ListRarities(context.Context) ([]domain.Rarity, error) {
	var out []domain.Rarity
	r.s.read(func(d *data) { out = sortedValues(d.rarities, func(rr domain.Rarity) int64 { return rr.ID }) })
	return out, nil
}

func (r *CatalogRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	return r.s.write(ctx, func(d *data) error {
		if !rarityKnown(d, item.RarityID) {
			return domain.ErrRarityNotFound
		}
		item.ID = d.next("items")
		d.items[item.ID] = *item
		return nil
	})
}

func (r *CatalogRepository) GetItem(_ context.Context, id int64) (*domain.Item, error) {
	var it *domain.Item
	r.s.read(func(d *data) { it = getItem(d, id) })
	if it == nil {
		return nil, domain.ErrItemNotFound
	}
	return it, nil
}

func (r *CatalogRepository) ListItems(context.Context) ([]domain.Item, error) {
	var out []domain.Item
	r.s.read(func(d *data) { out = sortedValues(d.items, func(i domain.Item) int64 { return i.ID }) })
	return out, nil
}

func (r *CatalogRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.items[item.ID]; !ok {
			return domain.ErrItemNotFound
		}
		if itemReferenced(d, item.ID) {
			return domain.ErrItemInUse
		}
		if !rarityKnown(d, item.RarityID) {
			return domain.ErrRarityNotFound
		}
		d.items[item.ID] = item
		return nil
	})
}

func (r *CatalogRepository) DeleteItem(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.items[id]; !ok {
			return domain.ErrItemNotFound
		}
		if itemReferenced(d, id) {
			return domain.ErrItemInUse
		}
		delete(d.items, id)
		return nil
	})
}

func (r *CatalogRepository) CreateAchievement(ctx context.Context, a *domain.Achievement) error {
	return r.s.write(ctx, func(d *data) error {
		if achievementNameTaken(d, a.Name, 0) {
			return domain.ErrDuplicate
		}
		a.ID = d.next("achievements")
		a.CreatedAt = r.s.now()
		d.achievements[a.ID] = *a
		return nil
	})
}

func (r *CatalogRepository) GetAchievement(_ context.Context, id int64) (*domain.Achievement, error) {
	var (
		a  domain.Achievement
		ok bool
	)
	r.s.read(func(d *data) { a, ok = d.achievements[id] })
	if !ok {
		return nil, domain.ErrAchievementNotFound
	}
	return &a, nil
}

func (r *CatalogRepository) ListAchievements(context.Context) ([]domain.Achievement, error) {
	var out []domain.Achievement
	r.s.read(func(d *data) { out = listAchievements(d) })
	return out, nil
}

func (r *CatalogRepository) UpdateAchievement(ctx context.Context, a domain.Achievement) error {
	return r.s.write(ctx, func(d *data) error {
		existing, ok := d.achievements[a.ID]
		if !ok {
			return domain.ErrAchievementNotFound
		}
		if achievementNameTaken(d, a.Name, a.ID) {
			return domain.ErrDuplicate
		}
		a.CreatedAt = existing.CreatedAt
		d.achievements[a.ID] = a
		return nil
	})
}

func (r *CatalogRepository) DeleteAchievement(ctx context.Context, id int64) error {
	return r.s.write(ctx, func(d *data) error {
		if _, ok := d.achievements[id]; !ok {
			return domain.ErrAchievementNotFound
		}
		delete(d.achievements, id)
		for gid, g := range d.grants {
			if g.AchievementID == id {
				delete(d.grants, gid)
			}
		}
		return nil
	})
}

func getPhase(d *data, id int64) *domain.Phase {
	p, ok := d.phases[id]
	if !ok {
		return nil
	}
	return &p
}

func getItem(d *data, id int64) *domain.Item {
	it, ok := d.items[id]
	if !ok {
		return nil
	}
	return &it
}

func listAchievements(d *data) []domain.Achievement {
	return sortedValues(d.achievements, func(a domain.Achievement) int64 { return a.ID })
}

func itemReferenced(d *data, itemID int64) bool {
	for k := range d.inventory {
		if k.itemID == itemID {
			return true
		}
	}
	return false
}

// rarityKnown reports whether id is unset or names an existing rarity
func rarityKnown(d *data, id *int64) bool {
	if id == nil {
		return true
	}
	_, ok := d.rarities[*id]
	return ok
}

func achievementNameTaken(d *data, name string, exceptID int64) bool {
	for _, a := range d.achievements {
		if a.Name == name && a.ID != exceptID {
			return true
		}
	}
	return false
}
