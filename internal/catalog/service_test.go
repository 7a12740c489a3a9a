package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Bossforge_Go/internal/access"
	"github.com/osse101/Bossforge_Go/internal/database/memory"
	"github.com/osse101/Bossforge_Go/internal/domain"
)

func admin() context.Context {
	return access.WithPrincipal(context.Background(), access.Principal{ID: 1, Privileged: true})
}

func player() context.Context {
	return access.WithPrincipal(context.Background(), access.Principal{ID: 2})
}

func TestMutationsRequirePrivilege(t *testing.T) {
	svc := NewService(memory.New().Catalog())

	_, err := svc.CreateBoss(player(), BossInput{Name: "Golem"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreateItem(context.Background(), ItemInput{Name: "Espada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.CreateAchievement(player(), AchievementInput{Name: "Iniciante"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.ErrorIs(t, svc.DeleteAchievement(player(), 1), domain.ErrForbidden)

	bosses, err := svc.ListBosses(player())
	require.NoError(t, err)
	assert.Empty(t, bosses)
}

func TestBossesAndPhases(t *testing.T) {
	svc := NewService(memory.New().Catalog())
	ctx := admin()

	boss, err := svc.CreateBoss(ctx, BossInput{Name: " Golem "})
	require.NoError(t, err)
	assert.Equal(t, "Golem", boss.Name)
	assert.Equal(t, DefaultBossHealth, boss.Health)

	_, err = svc.CreateBoss(ctx, BossInput{Name: "Bad", Health: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	phase, err := svc.CreatePhase(ctx, PhaseInput{Name: "Floresta", BossID: &boss.ID, RewardCoins: 20, RewardExperience: 30})
	require.NoError(t, err)
	got, err := svc.GetPhase(ctx, phase.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.RewardCoins)

	free, err := svc.CreatePhase(ctx, PhaseInput{Name: "Tutorial"})
	require.NoError(t, err)
	assert.Nil(t, free.BossID)
	assert.Zero(t, free.RewardCoins)

	missing := int64(99)
	_, err = svc.CreatePhase(ctx, PhaseInput{Name: "Orphan", BossID: &missing})
	assert.ErrorIs(t, err, domain.ErrBossNotFound)

	_, err = svc.CreatePhase(ctx, PhaseInput{Name: "Negative", RewardCoins: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetBoss(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrBossNotFound)
}

func TestItems_ImmutableOnceHeld(t *testing.T) {
	store := memory.New()
	svc := NewService(store.Catalog())
	ctx := admin()

	item, err := svc.CreateItem(ctx, ItemInput{Name: "Espada", Power: 10})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, ItemInput{Name: "Espada Longa", Power: 12})
	require.NoError(t, err)
	assert.Equal(t, "Espada Longa", updated.Name)

	p := &domain.Player{Username: "u", Email: "u@example.com"}
	require.NoError(t, store.Players().CreatePlayer(context.Background(), p))
	tx, err := store.Progress().BeginTx(context.Background())
	require.NoError(t, err)
	_, err = tx.AddInventory(context.Background(), p.ID, item.ID, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))

	_, err = svc.UpdateItem(ctx, item.ID, ItemInput{Name: "Espada Curta"})
	assert.ErrorIs(t, err, domain.ErrItemInUse)

	_, err = svc.UpdateItem(ctx, 404, ItemInput{Name: "Nada"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRarities(t *testing.T) {
	svc := NewService(memory.New().Catalog())
	ctx := admin()

	_, err := svc.CreateRarity(player(), RarityInput{Name: "Raro", Color: "#0070dd"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	tests := []struct {
		name string
		in   RarityInput
	}{
		{"missing name", RarityInput{Name: "  ", Color: "#0070dd"}},
		{"missing color", RarityInput{Name: "Raro"}},
		{"not a color", RarityInput{Name: "Raro", Color: "blue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRarity(ctx, tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	rare, err := svc.CreateRarity(ctx, RarityInput{Name: " Raro ", Color: "#0070DD", Description: "Incomum"})
	require.NoError(t, err)
	assert.Equal(t, "Raro", rare.Name)
	assert.Equal(t, "#0070dd", rare.Color)

	_, err = svc.CreateRarity(ctx, RarityInput{Name: "Raro", Color: "#fff"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := svc.GetRarity(player(), rare.ID)
	require.NoError(t, err)
	assert.Equal(t, *rare, *got)

	item, err := svc.CreateItem(ctx, ItemInput{Name: "Arco", Power: 10, RarityID: &rare.ID})
	require.NoError(t, err)
	require.NotNil(t, item.RarityID)
	assert.Equal(t, rare.ID, *item.RarityID)

	missing := rare.ID + 100
	_, err = svc.CreateItem(ctx, ItemInput{Name: "Fantasma", RarityID: &missing})
	assert.ErrorIs(t, err, domain.ErrRarityNotFound)
	_, err = svc.UpdateItem(ctx, item.ID, ItemInput{Name: "Arco", RarityID: &missing})
	assert.ErrorIs(t, err, domain.ErrRarityNotFound)

	list, err := svc.ListRarities(player())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAchievements(t *testing.T) {
	svc := NewService(memory.New().Catalog())
	ctx := admin()

	a, err := svc.CreateAchievement(ctx, AchievementInput{Name: "Iniciante", XPRequired: 100, RewardCoins: 50})
	require.NoError(t, err)

	_, err = svc.CreateAchievement(ctx, AchievementInput{Name: "Iniciante", XPRequired: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.CreateAchievement(ctx, AchievementInput{Name: "Mago", Predicate: "casts_spells"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateAchievement(ctx, AchievementInput{Name: "Veterano", Predicate: "veteran", XPRequired: 1500})
	require.NoError(t, err)

	_, err = svc.CreateAchievement(ctx, AchievementInput{Name: "Neg", XPRequired: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	updated, err := svc.UpdateAchievement(ctx, a.ID, AchievementInput{Name: "Novato", XPRequired: 50, RewardCoins: 10})
	require.NoError(t, err)
	assert.Equal(t, "Novato", updated.Name)
	assert.Equal(t, a.CreatedAt, updated.CreatedAt)

	list, err := svc.ListAchievements(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Novato", list[0].Name, "catalog order is creation order")

	require.NoError(t, svc.DeleteAchievement(ctx, a.ID))
	_, err = svc.GetAchievement(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAchievementNotFound)
	assert.ErrorIs(t, svc.DeleteAchievement(ctx, a.ID), domain.ErrAchievementNotFound)
}

const seedYAML = `
bosses:
  - name: Rei Goblin
    health: 1000
phases:
  - name: Floresta Negra
    boss: Rei Goblin
    reward_coins: 100
    reward_experience: 250
  - name: Tutorial
rarities:
  - name: Comum
    color: "#9D9D9D"
items:
  - name: Poção de Cura
    power: 1
    rarity: Comum
achievements:
  - name: Iniciante
    xp_required: 100
    reward_coins: 50
  - name: Primeira Vitória
    predicate: first_victory
players:
  - username: admin
    email: admin@game.com
    password: secret1
    admin: true
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAndApplySeed(t *testing.T) {
	seed, err := LoadSeed(writeSeed(t, seedYAML))
	require.NoError(t, err)
	require.Len(t, seed.Phases, 2)
	assert.Equal(t, "Rei Goblin", seed.Phases[0].Boss)
	assert.Equal(t, int64(250), seed.Phases[0].RewardExperience)
	assert.True(t, seed.Players[0].Admin)

	svc := NewService(memory.New().Catalog())
	ctx := access.WithPrincipal(context.Background(), access.System)

	var registered []string
	register := func(_ context.Context, p SeedPlayer) error {
		for _, name := range registered {
			if name == p.Username {
				return domain.ErrDuplicate
			}
		}
		registered = append(registered, p.Username)
		return nil
	}

	report, err := ApplySeed(ctx, svc, seed, register)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Created: 8}, report)

	phases, err := svc.ListPhases(ctx)
	require.NoError(t, err)
	require.Len(t, phases, 2)
	require.NotNil(t, phases[0].BossID)

	rarities, err := svc.ListRarities(ctx)
	require.NoError(t, err)
	require.Len(t, rarities, 1)
	assert.Equal(t, "#9d9d9d", rarities[0].Color)
	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].RarityID)
	assert.Equal(t, rarities[0].ID, *items[0].RarityID)

	again, err := ApplySeed(ctx, svc, seed, register)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Skipped: 8}, again, "reapplying creates nothing")
}

func TestApplySeed_Errors(t *testing.T) {
	ctx := access.WithPrincipal(context.Background(), access.System)

	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSeed(writeSeed(t, "bosses: [unclosed"))
	assert.Error(t, err)

	seed := &Seed{Phases: []SeedPhase{{PhaseInput: PhaseInput{Name: "Lost"}, Boss: "Nobody"}}}
	_, err = ApplySeed(ctx, NewService(memory.New().Catalog()), seed, nil)
	assert.ErrorIs(t, err, domain.ErrBossNotFound)

	seed = &Seed{Items: []SeedItem{{ItemInput: ItemInput{Name: "Relic"}, Rarity: "Mythic"}}}
	_, err = ApplySeed(ctx, NewService(memory.New().Catalog()), seed, nil)
	assert.ErrorIs(t, err, domain.ErrRarityNotFound)

	_, err = ApplySeed(player(), NewService(memory.New().Catalog()), &Seed{Bosses: []BossInput{{Name: "X"}}}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestShippedSeedApplies(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("..", "..", "configs", "seed.yaml"))
	require.NoError(t, err)

	ctx := access.WithPrincipal(context.Background(), access.System)
	svc := NewService(memory.New().Catalog())
	report, err := ApplySeed(ctx, svc, seed, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Skipped)

	achievements, err := svc.ListAchievements(ctx)
	require.NoError(t, err)
	assert.Len(t, achievements, len(seed.Achievements))
}
