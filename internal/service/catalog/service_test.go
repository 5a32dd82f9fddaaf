package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salon-api/internal/model"
	"github.com/jwalitptl/salon-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/salon-api/pkg/errors"
)

func newService() *Service {
	return NewService(memory.NewStore().Catalog())
}

func hairCategory() *model.ServiceCategory {
	return &model.ServiceCategory{
		Name: "Hair",
		Icon: "scissors",
		Subcategories: []model.Subcategory{
			{Name: "Cut", DurationMin: 30, Price: 250},
			{Name: "Blow dry", DurationMin: 20, Price: 150},
		},
	}
}

func TestCreateCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	category := hairCategory()
	require.NoError(t, svc.CreateCategory(ctx, category))
	require.NotEqual(t, uuid.Nil, category.ID)

	got, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	require.Len(t, got.Subcategories, 2)
	assert.Equal(t, 0, got.Subcategories[0].Position)
	assert.Equal(t, 1, got.Subcategories[1].Position)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.ServiceCategory)
	}{
		{"missing name", func(c *model.ServiceCategory) { c.Name = "" }},
		{"empty service name", func(c *model.ServiceCategory) { c.Subcategories[0].Name = "" }},
		{"zero duration", func(c *model.ServiceCategory) { c.Subcategories[0].DurationMin = 0 }},
		{"negative price", func(c *model.ServiceCategory) { c.Subcategories[0].Price = -1 }},
		{"duplicate names", func(c *model.ServiceCategory) { c.Subcategories[1].Name = "Cut" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category := hairCategory()
			tt.mutate(category)

			err := svc.CreateCategory(ctx, category)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}
}

func TestAddSubcategoryRejectsDuplicates(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	category := hairCategory()
	require.NoError(t, svc.CreateCategory(ctx, category))

	err := svc.AddSubcategory(ctx, &model.Subcategory{
		CategoryID:  category.ID,
		Name:        "Cut",
		DurationMin: 45,
		Price:       300,
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	sub := &model.Subcategory{
		CategoryID:  category.ID,
		Name:        "Perm",
		DurationMin: 60,
		Price:       500,
	}
	require.NoError(t, svc.AddSubcategory(ctx, sub))
	assert.Equal(t, 2, sub.Position)
}

func TestDeleteSubcategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	category := hairCategory()
	require.NoError(t, svc.CreateCategory(ctx, category))

	got, err := svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteSubcategory(ctx, got.Subcategories[0].ID))

	got, err = svc.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Len(t, got.Subcategories, 1)
	assert.Equal(t, "Blow dry", got.Subcategories[0].Name)
}
