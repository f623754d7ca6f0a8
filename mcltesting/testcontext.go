// Package mcltesting provides deterministic value generation and a shared
// test context for exercising the mcl package.
package mcltesting

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
)

const (
	ValueBytes = 32
)

type TestContext struct {
	Log  logger.Logger
	Rand *rand.Rand
	T    *testing.T

	// RunLabel distinguishes the generated values of one context from any
	// other, including a re-seeded context in the same process.
	RunLabel string

	valueBytes int
}

type TestConfig struct {
	// We seed the RNG with Seed. It is normal to force it to some fixed
	// value so that the generated data is the same from run to run.
	Seed            int64
	TestLabelPrefix string
	// ValueBytes is the size of generated values; 0 defaults to ValueBytes.
	ValueBytes int
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T: t,
	}
	logger.New("INFO")
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)

	c.Rand = rand.New(rand.NewSource(cfg.Seed))
	c.RunLabel = fmt.Sprintf("%s/%s", cfg.TestLabelPrefix, uuid.NewString())

	c.valueBytes = cfg.ValueBytes
	if c.valueBytes == 0 {
		c.valueBytes = ValueBytes
	}
	if c.valueBytes < 9 {
		c.T.Fatalf("value size %d cannot carry the distinctness counter", c.valueBytes)
	}

	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// GenerateValues returns n distinct values. The prefix of each value is
// drawn from the seeded RNG so runs with the same seed generate the same
// value bodies; the trailing counter guarantees distinctness regardless.
func (c *TestContext) GenerateValues(n int) [][]byte {
	values := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		v := make([]byte, c.valueBytes)
		_, _ = c.Rand.Read(v[:len(v)-8])
		binary.BigEndian.PutUint64(v[len(v)-8:], uint64(i))
		values = append(values, v)
	}
	return values
}
