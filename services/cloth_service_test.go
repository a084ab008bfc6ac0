package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azeezfasasi/lasu-mba-cloth/logger"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
	"github.com/Azeezfasasi/lasu-mba-cloth/stores"
	"github.com/Azeezfasasi/lasu-mba-cloth/tests/testutil"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

func newClothService(t *testing.T) (*ClothService, *MockImageService) {
	t.Helper()
	db := testutil.NewTestDB(t)
	images := NewMockImageService()
	return NewClothService(stores.NewClothStore(db), images, logger.Nop()), images
}

func clothInput(name string) CreateClothInput {
	price := 5000.0
	return CreateClothInput{
		Name:        name,
		Description: "Association t-shirt",
		Price:       &price,
		Color:       "Navy",
		Material:    "Cotton",
		Sizes: []ClothSizeInput{
			{Size: "M", Quantity: 3},
			{Size: "L", Quantity: 0},
		},
		Images: []ClothImageInput{
			{URL: "https://cdn.test/front.png", PublicID: "cloth-designs/front"},
			{URL: "https://cdn.test/back.png", PublicID: "cloth-designs/back"},
		},
	}
}

func TestClothService_Create(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	cloth, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, cloth.ID)
	assert.Equal(t, models.ClothStatusActive, cloth.Status)
	assert.True(t, cloth.InStock)
	require.Len(t, cloth.Images, 2)
	assert.Equal(t, 0, cloth.Images[0].DisplayOrder)
	assert.Equal(t, 1, cloth.Images[1].DisplayOrder)
}

func TestClothService_CreateValidation(t *testing.T) {
	svc, _ := newClothService(t)
	negative := -1.0

	tests := []struct {
		name      string
		mutate    func(in *CreateClothInput)
		wantField string
	}{
		{name: "missing name", mutate: func(in *CreateClothInput) { in.Name = "" }, wantField: "name"},
		{name: "whitespace-only name", mutate: func(in *CreateClothInput) { in.Name = "   " }, wantField: "name"},
		{name: "whitespace-only color", mutate: func(in *CreateClothInput) { in.Color = "\t " }, wantField: "color"},
		{name: "missing price", mutate: func(in *CreateClothInput) { in.Price = nil }, wantField: "price"},
		{name: "negative price", mutate: func(in *CreateClothInput) { in.Price = &negative }, wantField: "price"},
		{name: "missing material", mutate: func(in *CreateClothInput) { in.Material = "" }, wantField: "material"},
		{name: "no images", mutate: func(in *CreateClothInput) { in.Images = nil }, wantField: "images"},
		{name: "unknown size", mutate: func(in *CreateClothInput) { in.Sizes[0].Size = "XXXL" }, wantField: "sizes[0].size"},
		{name: "unknown status", mutate: func(in *CreateClothInput) { in.Status = "archived" }, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := clothInput("Validation Tee")
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in, nil)
			appErr := assertAppError(t, err, utils.CodeValidation, http.StatusBadRequest)
			assert.Contains(t, appErr.Details, tt.wantField)
		})
	}

	page, err := svc.List(context.Background(), ClothQuery{Page: utils.ParsePagination("", "")})
	require.NoError(t, err)
	assert.Empty(t, page.Cloths)
}

func TestClothService_CreateRejectsDuplicateName(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, clothInput("  classic TEE "), nil)
	appErr := assertAppError(t, err, utils.CodeConflict, http.StatusBadRequest)
	assert.Equal(t, "A cloth with this name already exists", appErr.Message)
}

func TestClothService_GetCountsViews(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
	require.NoError(t, err)

	first, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Views)

	byName, err := svc.GetByName(ctx, "CLASSIC tee")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, 2, byName.Views)

	_, err = svc.GetByID(ctx, "not-a-uuid")
	assertAppError(t, err, utils.CodeNotFound, http.StatusNotFound)

	_, err = svc.GetByName(ctx, "Missing Tee")
	assertAppError(t, err, utils.CodeNotFound, http.StatusNotFound)
}

func TestClothService_List(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha Tee", "Bravo Hoodie", "Charlie Tee"} {
		_, err := svc.Create(ctx, clothInput(name), nil)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ClothQuery{SortBy: "name", Page: utils.ParsePagination("1", "2")})
	require.NoError(t, err)
	require.Len(t, page.Cloths, 2)
	assert.Equal(t, "Alpha Tee", page.Cloths[0].Name)
	assert.Equal(t, utils.PageInfo{CurrentPage: 1, TotalPages: 2, TotalItems: 3, ItemsPerPage: 2}, page.Pagination)

	page, err = svc.List(ctx, ClothQuery{Search: "hoodie", Page: utils.ParsePagination("", "")})
	require.NoError(t, err)
	require.Len(t, page.Cloths, 1)
	assert.Equal(t, "Bravo Hoodie", page.Cloths[0].Name)
}

func TestClothService_Update(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	tee, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, clothInput("Varsity Hoodie"), nil)
	require.NoError(t, err)

	t.Run("renaming onto another cloth is a conflict", func(t *testing.T) {
		name := "varsity hoodie"
		_, err := svc.Update(ctx, tee.ID.String(), ClothPatch{Name: &name}, nil)
		assertAppError(t, err, utils.CodeConflict, http.StatusBadRequest)
	})

	t.Run("changing only the case of its own name is allowed", func(t *testing.T) {
		name := "CLASSIC TEE"
		updated, err := svc.Update(ctx, tee.ID.String(), ClothPatch{Name: &name}, nil)
		require.NoError(t, err)
		assert.Equal(t, "CLASSIC TEE", updated.Name)
	})

	t.Run("blank rename is rejected", func(t *testing.T) {
		name := "  "
		_, err := svc.Update(ctx, tee.ID.String(), ClothPatch{Name: &name}, nil)
		appErr := assertAppError(t, err, utils.CodeValidation, http.StatusBadRequest)
		assert.Contains(t, appErr.Details, "name")
	})

	t.Run("sizes recompute stock", func(t *testing.T) {
		updated, err := svc.Update(ctx, tee.ID.String(), ClothPatch{Sizes: []ClothSizeInput{{Size: "S", Quantity: 0}}}, nil)
		require.NoError(t, err)
		assert.False(t, updated.InStock)
	})

	t.Run("missing cloth", func(t *testing.T) {
		price := 1.0
		_, err := svc.Update(ctx, "7c3c5a8e-31a4-4c55-a5b8-9a0f1d2b7e11", ClothPatch{Price: &price}, nil)
		assertAppError(t, err, utils.CodeNotFound, http.StatusNotFound)
	})
}

func TestClothService_UpdateStock(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	tee, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStock(ctx, tee.ID.String(), nil)
	assertAppError(t, err, utils.CodeValidation, http.StatusBadRequest)

	updated, err := svc.UpdateStock(ctx, tee.ID.String(), []SizeUpdate{
		{Size: "M", Quantity: 0},
		{Size: "XXL", Quantity: 9},
	})
	require.NoError(t, err)
	assert.False(t, updated.InStock)
	assert.Len(t, updated.Sizes, 2, "sizes the cloth does not carry are ignored")

	updated, err = svc.UpdateStock(ctx, tee.ID.String(), []SizeUpdate{{Size: "L", Quantity: 4}})
	require.NoError(t, err)
	assert.True(t, updated.InStock)
}

func TestClothService_Delete(t *testing.T) {
	t.Run("removes images in one batch", func(t *testing.T) {
		svc, images := newClothService(t)
		ctx := context.Background()

		tee, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, tee.ID.String()))
		assert.Equal(t, [][]string{{"cloth-designs/front", "cloth-designs/back"}}, images.DeleteCalls())

		_, err = svc.GetByID(ctx, tee.ID.String())
		assertAppError(t, err, utils.CodeNotFound, http.StatusNotFound)
	})

	t.Run("media failure does not block deletion", func(t *testing.T) {
		svc, images := newClothService(t)
		images.SetDeleteError(errors.New("media host down"))
		ctx := context.Background()

		tee, err := svc.Create(ctx, clothInput("Classic Tee"), nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, tee.ID.String()))
		_, err = svc.GetByID(ctx, tee.ID.String())
		assertAppError(t, err, utils.CodeNotFound, http.StatusNotFound)
	})

	t.Run("missing cloth", func(t *testing.T) {
		svc, _ := newClothService(t)
		err := svc.Delete(context.Background(), "7c3c5a8e-31a4-4c55-a5b8-9a0f1d2b7e11")
		assertAppError(t, err, utils.CodeNotFound, http.StatusNotFound)
	})
}

func TestClothService_Featured(t *testing.T) {
	svc, _ := newClothService(t)
	ctx := context.Background()

	for i, name := range []string{"One", "Two", "Three"} {
		in := clothInput(name)
		in.Featured = i != 1
		_, err := svc.Create(ctx, in, nil)
		require.NoError(t, err)
	}

	featured, err := svc.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, featured, 2)
	for _, c := range featured {
		assert.True(t, c.Featured)
	}
}
