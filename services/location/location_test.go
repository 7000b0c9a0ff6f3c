package location

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"testing"
	"time"

	"roomservice/database"
	"roomservice/models"
	"roomservice/services/storage"
	"roomservice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeLocationRepo struct {
	items map[string]models.Location
}

func (r *fakeLocationRepo) GetAll() ([]models.Location, error) {
	out := []models.Location{}
	for _, l := range r.items {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}

func (r *fakeLocationRepo) GetByID(id string) (*models.Location, error) {
	if l, ok := r.items[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByName(name string) (*models.Location, error) {
	for _, l := range r.items {
		if l.Location == name {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) Create(l *models.Location) error {
	r.items[l.ID] = *l
	return nil
}

func (r *fakeLocationRepo) Rename(id, name string) (*models.Location, error) {
	l, ok := r.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	l.Location = name
	r.items[id] = l
	return &l, nil
}

func (r *fakeLocationRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeQRRepo struct {
	items map[string]models.QRCode
}

func (r *fakeQRRepo) filter(keep func(models.QRCode) bool) []models.QRCode {
	out := []models.QRCode{}
	for _, q := range r.items {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeQRRepo) GetAll() ([]models.QRCode, error) {
	return r.filter(func(models.QRCode) bool { return true }), nil
}

func (r *fakeQRRepo) GetByID(id string) (*models.QRCode, error) {
	if q, ok := r.items[id]; ok {
		return &q, nil
	}
	return nil, nil
}

func (r *fakeQRRepo) GetByLocation(locationID string) ([]models.QRCode, error) {
	return r.filter(func(q models.QRCode) bool { return q.Location == locationID }), nil
}

func (r *fakeQRRepo) Create(q *models.QRCode) error {
	r.items[q.ID] = *q
	return nil
}

func (r *fakeQRRepo) UpdateSetDocument(id string, doc bson.M) (*models.QRCode, error) {
	q, ok := r.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if v, ok := doc["qrCodeUrl"].(string); ok {
		q.QRCodeURL = v
	}
	if v, ok := doc["publicId"].(string); ok {
		q.PublicID = v
	}
	r.items[id] = q
	return &q, nil
}

func (r *fakeQRRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeQRRepo) DeleteByLocation(locationID string) ([]models.QRCode, error) {
	codes := r.filter(func(q models.QRCode) bool { return q.Location == locationID })
	for _, q := range codes {
		delete(r.items, q.ID)
	}
	return codes, nil
}

type upload struct {
	folder, publicID string
	data             []byte
}

type fakeStorage struct {
	uploads []upload
}

func (s *fakeStorage) UploadImage(context.Context, io.Reader, string) (*storage.Asset, error) {
	panic("not used")
}

func (s *fakeStorage) UploadBytes(_ context.Context, data []byte, folder, publicID string) (*storage.Asset, error) {
	s.uploads = append(s.uploads, upload{folder, publicID, data})
	id := folder + "/" + publicID
	return &storage.Asset{URL: "https://cdn.test/" + id + ".png", PublicID: id}, nil
}

func (s *fakeStorage) DeleteFile(context.Context, string) error { return nil }

type recordingRemover struct {
	removed []string
}

func (r *recordingRemover) RemoveAssets(_ context.Context, ids ...string) {
	for _, id := range ids {
		if id != "" {
			r.removed = append(r.removed, id)
		}
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func newService(baseURL string) (*DefaultLocationService, *fakeStorage, *recordingRemover) {
	store := &fakeStorage{}
	remover := &recordingRemover{}
	return &DefaultLocationService{
		Locations: &fakeLocationRepo{items: map[string]models.Location{}},
		QRCodes:   &fakeQRRepo{items: map[string]models.QRCode{}},
		Storage:   store,
		Assets:    remover,
		BaseURL:   baseURL,
		Now:       func() time.Time { return time.UnixMilli(1700000000000) },
	}, store, remover
}

func TestCreateLocation(t *testing.T) {
	svc, _, _ := newService("")

	loc, err := svc.CreateLocation("  Pool Bar ")
	require.NoError(t, err)
	assert.Equal(t, "Pool Bar", loc.Location)

	_, err = svc.CreateLocation("Pool Bar")
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))

	_, err = svc.CreateLocation("   ")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestCreateQRCode(t *testing.T) {
	svc, store, _ := newService("https://menu.example.com/")
	loc, err := svc.CreateLocation("Floor 3")
	require.NoError(t, err)

	qr, err := svc.CreateQRCode(context.Background(), loc.ID, "Room 301")
	require.NoError(t, err)
	require.Len(t, store.uploads, 1)

	up := store.uploads[0]
	assert.Equal(t, QRFolder, up.folder)
	assert.Equal(t, "qr-Floor_3-Room_301-1700000000000", up.publicID)
	assert.True(t, bytes.HasPrefix(up.data, pngMagic))
	assert.Equal(t, QRFolder+"/"+up.publicID, qr.PublicID)
	assert.Equal(t, loc.ID, qr.Location)

	text, err := svc.content(qr.ID, *loc, qr.Label)
	require.NoError(t, err)
	assert.Equal(t, "https://menu.example.com/qr/"+qr.ID, text)

	_, err = svc.CreateQRCode(context.Background(), "missing", "x")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
	_, err = svc.CreateQRCode(context.Background(), loc.ID, " ")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestContentWithoutBaseURL(t *testing.T) {
	svc, _, _ := newService("")

	text, err := svc.content("id", models.Location{Location: "Lobby"}, "Table 4")
	require.NoError(t, err)
	assert.JSONEq(t, `{"location":"Lobby","label":"Table 4"}`, text)
}

func TestUpdateLocationRegeneratesCodes(t *testing.T) {
	svc, store, remover := newService("")
	ctx := context.Background()
	loc, err := svc.CreateLocation("Spa")
	require.NoError(t, err)
	first, err := svc.CreateQRCode(ctx, loc.ID, "A")
	require.NoError(t, err)
	second, err := svc.CreateQRCode(ctx, loc.ID, "B")
	require.NoError(t, err)

	svc.Now = func() time.Time { return time.UnixMilli(1700000009999) }
	res, err := svc.UpdateLocation(ctx, loc.ID, "Wellness")
	require.NoError(t, err)
	assert.Equal(t, "Wellness", res.Location.Location)
	assert.Equal(t, 2, res.UpdatedQRCodes)
	assert.Len(t, store.uploads, 4)
	assert.ElementsMatch(t, []string{first.PublicID, second.PublicID}, remover.removed)

	data, err := svc.GetQRCodeData(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wellness", data.Location)
	assert.Equal(t, "A", data.Label)
	assert.Equal(t, loc.ID, data.LocationID)

	_, err = svc.UpdateLocation(ctx, "missing", "x")
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestUpdateLocationRejectsTakenName(t *testing.T) {
	svc, _, _ := newService("")
	a, err := svc.CreateLocation("A")
	require.NoError(t, err)
	_, err = svc.CreateLocation("B")
	require.NoError(t, err)

	_, err = svc.UpdateLocation(context.Background(), a.ID, "B")
	assert.Equal(t, http.StatusConflict, utils.StatusOf(err))

	res, err := svc.UpdateLocation(context.Background(), a.ID, "A")
	require.NoError(t, err)
	assert.Zero(t, res.UpdatedQRCodes)
}

func TestDeleteLocationCascades(t *testing.T) {
	svc, _, remover := newService("")
	ctx := context.Background()
	loc, _ := svc.CreateLocation("Roof")
	qr, err := svc.CreateQRCode(ctx, loc.ID, "Bar")
	require.NoError(t, err)

	deleted, err := svc.DeleteLocation(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, loc.ID, deleted.Location.ID)
	require.Len(t, deleted.QRCodes, 1)
	assert.Equal(t, []string{qr.PublicID}, remover.removed)

	_, err = svc.GetQRCodeData(qr.ID)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
	_, err = svc.DeleteLocation(ctx, loc.ID)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestListingsPopulateLocation(t *testing.T) {
	svc, _, _ := newService("")
	ctx := context.Background()
	lobby, _ := svc.CreateLocation("Lobby")
	pool, _ := svc.CreateLocation("Pool")

	codes := svc.QRCodes.(*fakeQRRepo)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, c := range []struct{ loc, label string }{
		{lobby.ID, "L1"}, {pool.ID, "P1"}, {lobby.ID, "L2"},
	} {
		qr, err := svc.CreateQRCode(ctx, c.loc, c.label)
		require.NoError(t, err)
		qr.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		codes.items[qr.ID] = *qr
	}
	codes.items["orphan"] = models.QRCode{ID: "orphan", Location: "gone", Label: "X", CreatedAt: base.Add(-time.Hour)}

	all, err := svc.ListQRCodes()
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "L2", all[0].Label)
	assert.Equal(t, "Lobby", all[0].Location.Location)
	assert.Nil(t, all[3].Location)

	groups, err := svc.ListGrouped()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Lobby", groups[0].Location.Location)
	assert.Len(t, groups[0].QRCodes, 2)
	assert.Equal(t, "Pool", groups[1].Location.Location)

	byLocation, err := svc.ListByLocation(pool.ID)
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "P1", byLocation[0].Label)

	_, err = svc.ListByLocation("")
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}

func TestDeleteQRCode(t *testing.T) {
	svc, _, remover := newService("")
	ctx := context.Background()
	loc, _ := svc.CreateLocation("Gym")
	qr, err := svc.CreateQRCode(ctx, loc.ID, "Front")
	require.NoError(t, err)

	deleted, err := svc.DeleteQRCode(ctx, qr.ID)
	require.NoError(t, err)
	assert.Equal(t, qr.ID, deleted.ID)
	assert.Equal(t, []string{qr.PublicID}, remover.removed)

	_, err = svc.DeleteQRCode(ctx, qr.ID)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}
