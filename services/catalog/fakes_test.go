package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"roomservice/database"
	"roomservice/models"
	"roomservice/services/storage"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeCategoryRepo struct {
	items     map[string]models.Category
	failWrite bool
}

func (r *fakeCategoryRepo) GetAll() ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*models.Category, error) {
	if c, ok := r.items[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Create(c *models.Category) error {
	if r.failWrite {
		return errors.New("write failed")
	}
	r.items[c.ID] = *c
	return nil
}

func (r *fakeCategoryRepo) UpdateSetDocument(id string, doc bson.M) (*models.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if v, ok := doc["name"].(string); ok {
		c.Name = v
	}
	if v, ok := doc["translations"].(models.Translations); ok {
		c.Translations = v
	}
	if v, ok := doc["image"].(string); ok {
		c.Image = v
	}
	if v, ok := doc["publicId"].(string); ok {
		c.PublicID = v
	}
	r.items[id] = c
	return &c, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeSubcategoryRepo struct {
	items map[string]models.Subcategory
}

func (r *fakeSubcategoryRepo) sorted(keep func(models.Subcategory) bool) []models.Subcategory {
	out := []models.Subcategory{}
	for _, s := range r.items {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeSubcategoryRepo) GetAll() ([]models.Subcategory, error) {
	return r.sorted(func(models.Subcategory) bool { return true }), nil
}

func (r *fakeSubcategoryRepo) GetByID(id string) (*models.Subcategory, error) {
	if s, ok := r.items[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *fakeSubcategoryRepo) GetByIDs(ids []string) ([]models.Subcategory, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.sorted(func(s models.Subcategory) bool { return want[s.ID] }), nil
}

func (r *fakeSubcategoryRepo) GetByCategory(categoryID string) ([]models.Subcategory, error) {
	return r.sorted(func(s models.Subcategory) bool { return s.Category == categoryID }), nil
}

func (r *fakeSubcategoryRepo) Create(s *models.Subcategory) error {
	r.items[s.ID] = *s
	return nil
}

func (r *fakeSubcategoryRepo) UpdateSetDocument(id string, doc bson.M) (*models.Subcategory, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	for k, v := range doc {
		switch k {
		case "name":
			s.Name = v.(string)
		case "description":
			s.Description = v.(string)
		case "category":
			s.Category = v.(string)
		case "price":
			s.Price = v.(float64)
		case "priceSchedule":
			s.RawPriceSchedule = v
		case "isActive":
			s.IsActive = v.(bool)
		case "image":
			s.Image = v.(string)
		case "publicId":
			s.PublicID = v.(string)
		}
	}
	r.items[id] = s
	return &s, nil
}

func (r *fakeSubcategoryRepo) Delete(id string) error {
	if _, ok := r.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeSubcategoryRepo) DeleteByCategory(categoryID string) ([]models.Subcategory, error) {
	subs, _ := r.GetByCategory(categoryID)
	for _, s := range subs {
		delete(r.items, s.ID)
	}
	return subs, nil
}

type fakeStorage struct {
	uploads int
}

func (s *fakeStorage) UploadImage(_ context.Context, r io.Reader, folder string) (*storage.Asset, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	s.uploads++
	id := fmt.Sprintf("%s/img-%d", folder, s.uploads)
	return &storage.Asset{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (s *fakeStorage) UploadBytes(_ context.Context, _ []byte, folder, publicID string) (*storage.Asset, error) {
	id := folder + "/" + publicID
	return &storage.Asset{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (s *fakeStorage) DeleteFile(context.Context, string) error { return nil }

type recordingRemover struct {
	mu      sync.Mutex
	removed []string
}

func (r *recordingRemover) RemoveAssets(_ context.Context, ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if id != "" {
			r.removed = append(r.removed, id)
		}
	}
}

type suffixTranslator struct{}

func (suffixTranslator) Translate(_ context.Context, text, lang string) string {
	return text + "@" + lang
}
