package systems

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/gonewx/survivor/pkg/combat"
	"github.com/gonewx/survivor/pkg/config"
	"github.com/gonewx/survivor/pkg/entities"
	"github.com/gonewx/survivor/pkg/pool"
	"github.com/gonewx/survivor/pkg/utils"
)

// noCrit 永远不暴击的随机源
type noCrit struct{}

func (noCrit) Float64() float64 { return 0.999 }

type world struct {
	balance  config.Balance
	actors   *pool.Pool
	resolver *combat.Resolver
	player   *entities.Player
}

func newWorld(t *testing.T) *world {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	b := config.DefaultBalance()
	actors := pool.New()
	actors.Prewarm([]config.PoolDefinition{
		{Key: "arrow", Kind: config.KindProjectile, Size: 8, Expandable: true},
		{Key: "bat", Kind: config.KindEnemy, Size: 8, Expandable: true},
		{Key: "gem", Kind: config.KindPickup, Size: 8, Expandable: true},
	})
	return &world{
		balance:  b,
		actors:   actors,
		resolver: combat.NewResolver(b.Combat, nil, actors, noCrit{}, nil),
		player:   entities.NewPlayer(b.Player),
	}
}

func (w *world) enemy(pos utils.Vec2, hp, contact float64) *pool.Actor {
	a := w.actors.Acquire("bat", pos, 0)
	a.Health.Reset(hp)
	a.Enemy.Radius = 0.4
	a.Enemy.Speed = 2
	a.Enemy.ContactDamage = contact
	return a
}

func archer(key string) *config.AbilityDescriptor {
	a := config.NewAbility("Archer skill", config.RarityCommon)
	a.ProjectileKey = key
	return a
}
