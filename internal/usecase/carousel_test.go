package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCarouselWrapsBothDirections(t *testing.T) {
	c := NewCarousel([]string{"a.jpg", "b.mp4", "c.jpg"})

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, "a.jpg", c.Current())

	c.Next()
	assert.Equal(t, 1, c.Index())
	c.Next()
	c.Next()
	assert.Equal(t, 0, c.Index(), "advancing past the end wraps to the start")

	c.Prev()
	assert.Equal(t, 2, c.Index(), "stepping back from the start wraps to the end")
}

func TestCarouselNextThenPrevReturnsToStart(t *testing.T) {
	c := NewCarousel([]string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"})
	c.Seek(2)

	c.Next()
	c.Prev()
	assert.Equal(t, 2, c.Index())
}

func TestCarouselSingleSlideIsStable(t *testing.T) {
	c := NewCarousel([]string{"only.jpg"})

	c.Next()
	c.Prev()
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, "only.jpg", c.Current())
}

func TestCarouselEmpty(t *testing.T) {
	c := NewCarousel(nil)

	c.Next()
	c.Prev()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "", c.Current())
}

func TestCarouselSeekIgnoresOutOfRange(t *testing.T) {
	c := NewCarousel([]string{"a.jpg", "b.jpg"})

	c.Seek(5)
	assert.Equal(t, 0, c.Index())
	c.Seek(-1)
	assert.Equal(t, 0, c.Index())
	c.Seek(1)
	assert.Equal(t, 1, c.Index())
}
