package memory_test

import (
	"testing"

	"github.com/kdvornichenko/birthday/pkg/adapters/memory"
	"github.com/kdvornichenko/birthday/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunResponseStoreContract(t, memory.NewStore())
}
