package sessions

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-login-portal/internal/models"
)

func TestNavigator_FIFO(t *testing.T) {
	n := NewNavigator("sid")

	_, ok := n.Take()
	assert.False(t, ok)

	n.GoTo(models.RouteHome)
	n.GoTo(models.RouteVerifyEmail)
	assert.Equal(t, 2, n.Pending())

	r, ok := n.Take()
	assert.True(t, ok)
	assert.Equal(t, models.RouteHome, r)

	r, ok = n.Take()
	assert.True(t, ok)
	assert.Equal(t, models.RouteVerifyEmail, r)

	assert.Equal(t, 0, n.Pending())
	assert.Equal(t, []models.Route{models.RouteHome, models.RouteVerifyEmail}, n.History())
}

func TestNavigator_Concurrent(t *testing.T) {
	n := NewNavigator("sid")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.GoTo(models.RouteHome)
		}()
	}
	wg.Wait()

	taken := 0
	for {
		if _, ok := n.Take(); !ok {
			break
		}
		taken++
	}
	assert.Equal(t, 50, taken)
}
