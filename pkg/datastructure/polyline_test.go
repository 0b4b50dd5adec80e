package datastructure_test

import (
	"testing"

	"github.com/brafiq/bearmaps/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestRenderPath(t *testing.T) {
	t.Run("known encoding", func(t *testing.T) {
		path := []datastructure.Coordinate{
			datastructure.NewCoordinate(38.5, -120.2),
			datastructure.NewCoordinate(40.7, -120.95),
			datastructure.NewCoordinate(43.252, -126.453),
		}
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", datastructure.RenderPath(path))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Equal(t, "", datastructure.RenderPath(nil))
	})
}
