package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/Bossforge_Go/internal/domain"
	"github.com/osse101/Bossforge_Go/internal/logger"
)

// Seed is the YAML catalog file. Phases reference bosses by name and items
// reference rarities by name.
type Seed struct {
	Bosses       []BossInput        `yaml:"bosses"`
	Phases       []SeedPhase        `yaml:"phases"`
	Rarities     []RarityInput      `yaml:"rarities"`
	Items        []SeedItem         `yaml:"items"`
	Achievements []AchievementInput `yaml:"achievements"`
	Players      []SeedPlayer       `yaml:"players"`
}

// SeedPhase is a phase whose boss is named rather than numbered
type SeedPhase struct {
	PhaseInput `yaml:",inline"`
	Boss       string `yaml:"boss"`
}

// SeedItem is an item whose rarity is named rather than numbered
type SeedItem struct {
	ItemInput `yaml:",inline"`
	Rarity    string `yaml:"rarity"`
}

// SeedPlayer is an initial account
type SeedPlayer struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Admin    bool   `yaml:"admin"`
}

// SeedReport counts what ApplySeed created and skipped
type SeedReport struct {
	Created int
	Skipped int
}

// PlayerRegistrar registers one seeded player. It returns domain.ErrDuplicate
// when the player already exists.
type PlayerRegistrar func(ctx context.Context, p SeedPlayer) error

// LoadSeed reads and parses a seed file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// ApplySeed creates every seed entry that is not already present, matching
// existing catalog entries by name. It can be run repeatedly. register may be nil.
func ApplySeed(ctx context.Context, svc Service, seed *Seed, register PlayerRegistrar) (SeedReport, error) {
	log := logger.FromContext(ctx)
	var report SeedReport

	bosses, err := svc.ListBosses(ctx)
	if err != nil {
		return report, err
	}
	bossIDs := make(map[string]int64, len(bosses))
	for _, b := range bosses {
		bossIDs[b.Name] = b.ID
	}
	for _, in := range seed.Bosses {
		if _, ok := bossIDs[in.Name]; ok {
			report.Skipped++
			continue
		}
		b, err := svc.CreateBoss(ctx, in)
		if err != nil {
			return report, fmt.Errorf("boss %q: %w", in.Name, err)
		}
		bossIDs[b.Name] = b.ID
		report.Created++
	}

	phases, err := svc.ListPhases(ctx)
	if err != nil {
		return report, err
	}
	phaseNames := namesOf(phases, func(p domain.Phase) string { return p.Name })
	for _, sp := range seed.Phases {
		if phaseNames[sp.Name] {
			report.Skipped++
			continue
		}
		in := sp.PhaseInput
		if sp.Boss != "" {
			id, ok := bossIDs[sp.Boss]
			if !ok {
				return report, fmt.Errorf("phase %q: %w: %s", sp.Name, domain.ErrBossNotFound, sp.Boss)
			}
			in.BossID = &id
		}
		if _, err := svc.CreatePhase(ctx, in); err != nil {
			return report, fmt.Errorf("phase %q: %w", sp.Name, err)
		}
		report.Created++
	}

	rarities, err := svc.ListRarities(ctx)
	if err != nil {
		return report, err
	}
	rarityIDs := make(map[string]int64, len(rarities))
	for _, r := range rarities {
		rarityIDs[r.Name] = r.ID
	}
	for _, in := range seed.Rarities {
		if _, ok := rarityIDs[in.Name]; ok {
			report.Skipped++
			continue
		}
		r, err := svc.CreateRarity(ctx, in)
		if err != nil {
			return report, fmt.Errorf("rarity %q: %w", in.Name, err)
		}
		rarityIDs[r.Name] = r.ID
		report.Created++
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		return report, err
	}
	itemNames := namesOf(items, func(i domain.Item) string { return i.Name })
	for _, si := range seed.Items {
		if itemNames[si.Name] {
			report.Skipped++
			continue
		}
		in := si.ItemInput
		if si.Rarity != "" {
			id, ok := rarityIDs[si.Rarity]
			if !ok {
				return report, fmt.Errorf("item %q: %w: %s", si.Name, domain.ErrRarityNotFound, si.Rarity)
			}
			in.RarityID = &id
		}
		if _, err := svc.CreateItem(ctx, in); err != nil {
			return report, fmt.Errorf("item %q: %w", si.Name, err)
		}
		report.Created++
	}

	for _, in := range seed.Achievements {
		_, err := svc.CreateAchievement(ctx, in)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			report.Skipped++
		case err != nil:
			return report, fmt.Errorf("achievement %q: %w", in.Name, err)
		default:
			report.Created++
		}
	}

	if register != nil {
		for _, p := range seed.Players {
			err := register(ctx, p)
			switch {
			case errors.Is(err, domain.ErrDuplicate):
				log.Debug(LogMsgSeedSkipped, "player", p.Username)
				report.Skipped++
			case err != nil:
				return report, fmt.Errorf("player %q: %w", p.Username, err)
			default:
				report.Created++
			}
		}
	}

	log.Info(LogMsgSeedApplied, "created", report.Created, "skipped", report.Skipped)
	return report, nil
}

func namesOf[T any](list []T, name func(T) string) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, v := range list {
		out[name(v)] = true
	}
	return out
}
