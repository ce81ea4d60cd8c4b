package memory_test

import (
	"testing"

	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/memory"
	"github.com/aussiebroadwan/ideadesk/internal/store/storetest"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	storetest.Run(t, func(t *testing.T) store.Store { return memory.NewStore() })
}
