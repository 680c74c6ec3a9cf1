package types

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownTeams_AddContains(t *testing.T) {
	teams := NewKnownTeams("Сборная Бразилии по футболу")

	assert.True(t, teams.Contains("Сборная Бразилии по футболу"))
	assert.False(t, teams.Contains("Сборная Аргентины по футболу"))

	assert.True(t, teams.Add("Сборная Аргентины по футболу"))
	assert.False(t, teams.Add("Сборная Аргентины по футболу"))
	assert.False(t, teams.Add(""))
	assert.Equal(t, 2, teams.Len())
}

func TestKnownTeams_NilIsEmpty(t *testing.T) {
	var teams *KnownTeams

	assert.False(t, teams.Contains("anything"))
	assert.Equal(t, 0, teams.Len())
}

func TestKnownTeams_ConcurrentAccess(t *testing.T) {
	teams := NewKnownTeams()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				teams.Add(fmt.Sprintf("team-%d-%d", i, j))
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				teams.Contains(fmt.Sprintf("team-%d-%d", i, j))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 400, teams.Len())
}
