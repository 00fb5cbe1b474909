package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"idstore/internal/domain/entity"
	"idstore/internal/usecase"
	"idstore/pkg/response"
)

const (
	noListingsMessage = "No IDs currently listed."
	noResultsMessage  = "No results found."
)

type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

type mediaItem struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

type listingCard struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Price      string    `json:"price"`
	ShortDesc  string    `json:"shortDesc"`
	PlayerInfo string    `json:"playerInfo"`
	Thumbnail  mediaItem `json:"thumbnail"`
	StockOut   bool      `json:"stockOut"`
}

type carouselSlide struct {
	URL    string `json:"url"`
	Kind   string `json:"kind"`
	Active bool   `json:"active"`
}

type listingDetail struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       string          `json:"price"`
	ShortDesc   string          `json:"shortDesc"`
	PlayerInfo  string          `json:"playerInfo"`
	StockOut    bool            `json:"stockOut"`
	Slides      []carouselSlide `json:"slides"`
	ActiveSlide int             `json:"activeSlide"`
	NextSlide   int             `json:"nextSlide"`
	PrevSlide   int             `json:"prevSlide"`
	ContactPath string          `json:"contactPath"`
}

// ListListings serves the catalog grid: the cached collection, optionally
// filtered by ?q=, most recently changed first. The message field carries the
// grid's literal empty-state text so clients stay dumb.
func (h *CatalogHandler) ListListings(c echo.Context) error {
	term := c.QueryParam("q")
	listings, collectionEmpty := h.catalogUseCase.Listings(term)

	cards := make([]listingCard, 0, len(listings))
	for _, listing := range listings {
		thumb := listing.Thumbnail()
		cards = append(cards, listingCard{
			ID:         listing.ID,
			Title:      listing.Title,
			Price:      listing.Price,
			ShortDesc:  listing.ShortDesc,
			PlayerInfo: listing.PlayerInfo,
			Thumbnail:  mediaItem{URL: thumb, Kind: entity.MediaKind(thumb)},
			StockOut:   listing.StockOut,
		})
	}

	message := ""
	if collectionEmpty {
		message = noListingsMessage
	} else if len(cards) == 0 {
		message = noResultsMessage
	}

	return response.Success(c, map[string]interface{}{
		"listings": cards,
		"message":  message,
	})
}

// GetListing serves the detail overlay. ?slide= selects the active carousel
// slide; next/prev indices wrap so a client can page without arithmetic.
func (h *CatalogHandler) GetListing(c echo.Context) error {
	id := c.Param("id")

	listing, err := h.catalogUseCase.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	carousel := usecase.NewCarousel(listing.MediaUrls)
	if s := c.QueryParam("slide"); s != "" {
		if i, convErr := strconv.Atoi(s); convErr == nil {
			carousel.Seek(i)
		}
	}

	slides := make([]carouselSlide, 0, carousel.Len())
	for i, url := range carousel.Slides() {
		slides = append(slides, carouselSlide{
			URL:    url,
			Kind:   entity.MediaKind(url),
			Active: i == carousel.Index(),
		})
	}

	active := carousel.Index()
	next, prev := active, active
	if n := carousel.Len(); n > 1 {
		next = (active + 1) % n
		prev = (active - 1 + n) % n
	}

	return response.Success(c, listingDetail{
		ID:          listing.ID,
		Title:       listing.Title,
		Price:       listing.Price,
		ShortDesc:   listing.ShortDesc,
		PlayerInfo:  listing.PlayerInfo,
		StockOut:    listing.StockOut,
		Slides:      slides,
		ActiveSlide: active,
		NextSlide:   next,
		PrevSlide:   prev,
		ContactPath: "/v1/listings/" + listing.ID + "/contact",
	})
}

// ContactListing redirects to the composed WhatsApp link. The number is
// decoded only here, per request, and never appears in a listing payload.
func (h *CatalogHandler) ContactListing(c echo.Context) error {
	id := c.Param("id")

	listing, err := h.catalogUseCase.Get(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	link, err := h.catalogUseCase.ContactLink(listing)
	if err != nil {
		return response.Error(c, err)
	}

	return c.Redirect(http.StatusFound, link)
}
