package usecase

// Carousel is the media viewer state machine for one listing's detail
// overlay: one slide per media URL, first slide active, wrap-around paging.
type Carousel struct {
	slides []string
	index  int
}

func NewCarousel(urls []string) *Carousel {
	slides := make([]string, len(urls))
	copy(slides, urls)
	return &Carousel{slides: slides}
}

func (c *Carousel) Len() int {
	return len(c.slides)
}

func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Current() string {
	if len(c.slides) == 0 {
		return ""
	}
	return c.slides[c.index]
}

func (c *Carousel) Slides() []string {
	return c.slides
}

// Next advances one slide, wrapping past the end. No-op with fewer than
// two slides.
func (c *Carousel) Next() {
	c.advance(1)
}

// Prev moves one slide back, wrapping before the start. No-op with fewer
// than two slides.
func (c *Carousel) Prev() {
	c.advance(-1)
}

func (c *Carousel) advance(direction int) {
	if len(c.slides) <= 1 {
		return
	}
	c.index = (c.index + direction + len(c.slides)) % len(c.slides)
}

// Seek jumps to slide i; out-of-range values keep the current slide.
func (c *Carousel) Seek(i int) {
	if i < 0 || i >= len(c.slides) {
		return
	}
	c.index = i
}
