package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idstore/internal/domain/entity"
	"idstore/pkg/errors"
)

type fakeListingRepo struct {
	records map[string]entity.Listing
	nextKey int
	creates int
	updates int
	deletes []string
	patches map[string]map[string]interface{}
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{
		records: make(map[string]entity.Listing),
		patches: make(map[string]map[string]interface{}),
	}
}

func (r *fakeListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.creates++
	r.nextKey++
	listing.ID = fmt.Sprintf("key-%d", r.nextKey)
	listing.UpdatedAt = time.Now().UnixMilli()
	r.records[listing.ID] = *listing
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	listing, ok := r.records[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	found := listing
	return &found, nil
}

func (r *fakeListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.updates++
	listing.UpdatedAt = time.Now().UnixMilli()
	r.records[listing.ID] = *listing
	return nil
}

func (r *fakeListingRepo) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	r.patches[id] = fields
	listing := r.records[id]
	if stockOut, ok := fields["stockOut"].(bool); ok {
		listing.StockOut = stockOut
	}
	r.records[id] = listing
	return nil
}

func (r *fakeListingRepo) Delete(ctx context.Context, id string) error {
	r.deletes = append(r.deletes, id)
	delete(r.records, id)
	return nil
}

func (r *fakeListingRepo) List(ctx context.Context) (entity.Snapshot, error) {
	snapshot := make(entity.Snapshot, len(r.records))
	for id, listing := range r.records {
		snapshot[id] = listing
	}
	return snapshot, nil
}

func (r *fakeListingRepo) Watch(ctx context.Context) (<-chan entity.Snapshot, error) {
	out := make(chan entity.Snapshot)
	close(out)
	return out, nil
}

type fakeUploader struct {
	failAt  int // 1-indexed; 0 means never fail
	failMsg string
	calls   []string
}

func (u *fakeUploader) Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	u.calls = append(u.calls, filename)
	if u.failAt > 0 && len(u.calls) == u.failAt {
		return "", fmt.Errorf("%s", u.failMsg)
	}
	return "https://media.example.com/" + filename, nil
}

func mediaFile(name, contentType string) MediaFile {
	return MediaFile{
		Filename:    name,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("file-bytes")), nil
		},
	}
}

func TestCreateListingUploadsInOrder(t *testing.T) {
	repo := newFakeListingRepo()
	uploader := &fakeUploader{}
	uc := NewAdminUseCase(repo, uploader)

	listing, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Messi Account",
		Price: "$50",
	}, []MediaFile{
		mediaFile("one.jpg", "image/jpeg"),
		mediaFile("two.mp4", "video/mp4"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"one.jpg", "two.mp4"}, uploader.calls)
	assert.Equal(t, []string{
		"https://media.example.com/one.jpg",
		"https://media.example.com/two.mp4",
	}, listing.MediaUrls)
	assert.NotEmpty(t, listing.ID)
}

func TestCreateListingFailedUploadAbortsEverything(t *testing.T) {
	repo := newFakeListingRepo()
	uploader := &fakeUploader{failAt: 2, failMsg: "file too large"}
	uc := NewAdminUseCase(repo, uploader)

	_, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Ronaldo Account",
		Price: "$80",
	}, []MediaFile{
		mediaFile("one.jpg", "image/jpeg"),
		mediaFile("two.jpg", "image/jpeg"),
		mediaFile("three.jpg", "image/jpeg"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, "UPLOAD_FAILED"))
	assert.Contains(t, err.Error(), "Upload 2 of 3 failed")
	assert.Contains(t, err.Error(), "file too large", "the host's message travels verbatim")
	assert.Equal(t, 2, len(uploader.calls), "uploads after the failure are never attempted")
	assert.Equal(t, 0, repo.creates, "no database write after a failed upload")
}

func TestCreateListingWithoutMediaGetsPlaceholder(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewAdminUseCase(repo, &fakeUploader{})

	listing, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Fresh Account",
		Price: "$10",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{entity.PlaceholderMediaURL}, listing.MediaUrls)
}

func TestUpdateListingWithoutFilesKeepsMedia(t *testing.T) {
	repo := newFakeListingRepo()
	uploader := &fakeUploader{}
	uc := NewAdminUseCase(repo, uploader)

	created, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Messi Account",
		Price: "$50",
	}, []MediaFile{mediaFile("u1.jpg", "image/jpeg")})
	require.NoError(t, err)

	updated, err := uc.UpdateListing(context.Background(), created.ID, ListingInput{
		Title:    "Messi Account",
		Price:    "$50",
		StockOut: true,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, created.MediaUrls, updated.MediaUrls, "media list preserved exactly")
	assert.True(t, updated.StockOut)
	assert.Equal(t, 1, len(uploader.calls), "no new uploads on a no-file edit")
}

func TestUpdateListingWithFilesReplacesMedia(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewAdminUseCase(repo, &fakeUploader{})

	created, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Messi Account",
		Price: "$50",
	}, []MediaFile{mediaFile("old1.jpg", "image/jpeg"), mediaFile("old2.jpg", "image/jpeg")})
	require.NoError(t, err)

	updated, err := uc.UpdateListing(context.Background(), created.ID, ListingInput{
		Title: "Messi Account",
		Price: "$45",
	}, []MediaFile{mediaFile("new.mp4", "video/mp4")})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://media.example.com/new.mp4"}, updated.MediaUrls,
		"new files fully replace prior media")
}

func TestUpdateListingFailedUploadLeavesRecordUntouched(t *testing.T) {
	repo := newFakeListingRepo()
	uploader := &fakeUploader{}
	uc := NewAdminUseCase(repo, uploader)

	created, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Messi Account",
		Price: "$50",
	}, []MediaFile{mediaFile("u1.jpg", "image/jpeg")})
	require.NoError(t, err)

	uploader.failAt = 2
	uploader.failMsg = "quota exceeded"

	_, err = uc.UpdateListing(context.Background(), created.ID, ListingInput{
		Title: "Changed Title",
		Price: "$99",
	}, []MediaFile{mediaFile("a.jpg", "image/jpeg"), mediaFile("b.jpg", "image/jpeg")})
	require.Error(t, err)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Messi Account", stored.Title, "record unchanged after aborted submit")
	assert.Equal(t, created.MediaUrls, stored.MediaUrls)
}

func TestSetStockOutUsesPartialWrite(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewAdminUseCase(repo, &fakeUploader{})

	created, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Messi Account",
		Price: "$50",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, uc.SetStockOut(context.Background(), created.ID, true))

	fields, ok := repo.patches[created.ID]
	require.True(t, ok)
	assert.Equal(t, true, fields["stockOut"])

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, stored.StockOut)
}

func TestDeleteListingRemovesRecord(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewAdminUseCase(repo, &fakeUploader{})

	created, err := uc.CreateListing(context.Background(), ListingInput{
		Title: "Messi Account",
		Price: "$50",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, uc.DeleteListing(context.Background(), created.ID))

	_, err = repo.GetByID(context.Background(), created.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	snapshot, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, snapshot, created.ID)
}

func TestDeleteMissingListing(t *testing.T) {
	repo := newFakeListingRepo()
	uc := NewAdminUseCase(repo, &fakeUploader{})

	err := uc.DeleteListing(context.Background(), "ghost")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Empty(t, repo.deletes)
}
