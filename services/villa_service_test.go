package services

import (
	"testing"

	"villa-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeImages(t *testing.T) {
	existing := []models.VillaImage{
		{URL: "https://img/a.jpg", PublicID: "a"},
		{URL: "https://img/b.jpg", PublicID: "b"},
		{URL: "https://img/c.jpg", PublicID: "c"},
	}
	uploads := []models.VillaImage{
		{URL: "https://img/d.jpg", PublicID: "d"},
	}

	merged := mergeImages(existing, []string{"a", "c"}, uploads)
	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].PublicID)
	assert.Equal(t, "c", merged[1].PublicID)
	assert.Equal(t, "d", merged[2].PublicID)

	// nothing retained, nothing new: everything dropped
	assert.Empty(t, mergeImages(existing, nil, nil))

	// retained ids that no longer exist are ignored
	merged = mergeImages(existing, []string{"zzz"}, uploads)
	require.Len(t, merged, 1)
	assert.Equal(t, "d", merged[0].PublicID)
}

func villaRow(id uint, name, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "price", "capacity", "status",
		"owner", "owner_id", "facilities", "images",
	}).AddRow(
		id, name, "near the valley", "1500000", "6", status,
		"rina", 10,
		[]byte(`{"bathroom":true,"wifi":true,"bed":true,"parking":false,"kitchen":true,"ac":false,"tv":true,"pool":false}`),
		[]byte(`[{"url":"https://img/a.jpg","publicId":"a"}]`),
	)
}

func TestPatchStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVillaService(db)

	mock.ExpectQuery("SELECT (.+) FROM `villas`").
		WillReturnRows(villaRow(3, "Villa Sago", models.VillaAvailable))
	mock.ExpectExec("UPDATE `villas` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	villa, err := svc.PatchStatus(3, models.VillaMaintenance)
	require.NoError(t, err)
	assert.Equal(t, models.VillaMaintenance, villa.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPatchStatusRejectsUnknownState(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVillaService(db)

	_, err := svc.PatchStatus(3, "renovating")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// no query was even issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVillaGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewVillaService(db)

	mock.ExpectQuery("SELECT (.+) FROM `villas`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByID(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateVillaRequiresImage(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewVillaService(db)

	_, err := svc.Create(models.Villa{Name: "Villa Sago"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
