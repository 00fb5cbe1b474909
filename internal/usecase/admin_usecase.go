package usecase

import (
	"context"
	"io"

	"idstore/internal/domain/entity"
	"idstore/internal/domain/repository"
	"idstore/internal/domain/service"
	"idstore/pkg/errors"
)

type AdminUseCase struct {
	listingRepo repository.ListingRepository
	uploader    service.MediaUploadService
}

func NewAdminUseCase(listingRepo repository.ListingRepository, uploader service.MediaUploadService) *AdminUseCase {
	return &AdminUseCase{
		listingRepo: listingRepo,
		uploader:    uploader,
	}
}

type ListingInput struct {
	Title       string
	Price       string
	ShortDesc   string
	PlayerInfo  string
	UserContact string
	StockOut    bool
}

// MediaFile is one locally selected file from the admin form. Open defers
// reading so nothing is buffered before its turn in the upload order.
type MediaFile struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

func (uc *AdminUseCase) CreateListing(ctx context.Context, input ListingInput, files []MediaFile) (*entity.Listing, error) {
	mediaUrls, err := uc.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}
	if len(mediaUrls) == 0 {
		mediaUrls = []string{entity.PlaceholderMediaURL}
	}

	listing := &entity.Listing{
		Title:       input.Title,
		Price:       input.Price,
		ShortDesc:   input.ShortDesc,
		PlayerInfo:  input.PlayerInfo,
		UserContact: input.UserContact,
		MediaUrls:   mediaUrls,
		StockOut:    input.StockOut,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// UpdateListing overwrites the record at id. New files fully replace the
// stored media list; no new files keeps it exactly as it was.
func (uc *AdminUseCase) UpdateListing(ctx context.Context, id string, input ListingInput, files []MediaFile) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(files) > 0 {
		mediaUrls, err := uc.uploadAll(ctx, files)
		if err != nil {
			// Uploads that did succeed are discarded; nothing was written.
			return nil, err
		}
		listing.MediaUrls = mediaUrls
	}

	listing.Title = input.Title
	listing.Price = input.Price
	listing.ShortDesc = input.ShortDesc
	listing.PlayerInfo = input.PlayerInfo
	listing.UserContact = input.UserContact
	listing.StockOut = input.StockOut

	if len(listing.MediaUrls) == 0 {
		listing.MediaUrls = []string{entity.PlaceholderMediaURL}
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// SetStockOut flips the availability flag with a partial write, leaving
// every other field untouched.
func (uc *AdminUseCase) SetStockOut(ctx context.Context, id string, stockOut bool) error {
	if _, err := uc.listingRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.listingRepo.Patch(ctx, id, map[string]interface{}{"stockOut": stockOut})
}

// DeleteListing hard-deletes the record. The confirmation step lives at the
// handler; by the time this runs the delete is decided.
func (uc *AdminUseCase) DeleteListing(ctx context.Context, id string) error {
	if _, err := uc.listingRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.listingRepo.Delete(ctx, id)
}

// uploadAll sends files strictly in selection order, one at a time. The
// first failure aborts the rest and discards earlier results, and the error
// names the failed upload with the host's message verbatim.
func (uc *AdminUseCase) uploadAll(ctx context.Context, files []MediaFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(files))
	for i, file := range files {
		url, err := uc.uploadOne(ctx, file)
		if err != nil {
			return nil, errors.UploadFailed(i+1, len(files), err.Error(), err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (uc *AdminUseCase) uploadOne(ctx context.Context, file MediaFile) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return uc.uploader.Upload(ctx, src, file.Filename, file.ContentType)
}
