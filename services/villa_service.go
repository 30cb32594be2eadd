package services

import (
	"errors"
	"fmt"
	"strings"

	"villa-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VillaService struct {
	DB *gorm.DB
}

func NewVillaService(db *gorm.DB) *VillaService {
	return &VillaService{DB: db}
}

func (s *VillaService) List() ([]models.Villa, error) {
	var villas []models.Villa
	err := s.DB.Order("id").Find(&villas).Error
	return villas, err
}

func (s *VillaService) GetByID(id uint) (models.Villa, error) {
	var villa models.Villa
	err := s.DB.First(&villa, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return villa, ErrNotFound
	}
	return villa, err
}

func (s *VillaService) Create(villa models.Villa) (models.Villa, error) {
	villa.Name = strings.TrimSpace(villa.Name)
	if villa.Name == "" {
		return models.Villa{}, ErrInvalidInput
	}
	if len(villa.Images.Data()) == 0 {
		// a villa is never listed without at least one image
		return models.Villa{}, ErrInvalidInput
	}
	if villa.Status == "" {
		villa.Status = models.VillaAvailable
	}
	if !models.ValidVillaStatus(villa.Status) {
		return models.Villa{}, ErrInvalidInput
	}

	if err := s.DB.Create(&villa).Error; err != nil {
		return models.Villa{}, fmt.Errorf("failed to create villa: %w", err)
	}
	return villa, nil
}

// mergeImages keeps the existing images whose publicId was retained and
// appends the new uploads, in that order.
func mergeImages(existing []models.VillaImage, retainedPublicIDs []string, newImages []models.VillaImage) []models.VillaImage {
	retained := make(map[string]bool, len(retainedPublicIDs))
	for _, pid := range retainedPublicIDs {
		retained[pid] = true
	}

	images := make([]models.VillaImage, 0, len(retainedPublicIDs)+len(newImages))
	for _, img := range existing {
		if retained[img.PublicID] {
			images = append(images, img)
		}
	}
	return append(images, newImages...)
}

// Update replaces the villa's fields and reconciles the image list: images
// whose publicId appears in retainedPublicIDs survive, newImages are
// appended. Everything else is dropped (removal happens at the hosting
// service, outside this system).
func (s *VillaService) Update(id uint, updated models.Villa, retainedPublicIDs []string, newImages []models.VillaImage) (models.Villa, error) {
	villa, err := s.GetByID(id)
	if err != nil {
		return villa, err
	}

	if updated.Status != "" && !models.ValidVillaStatus(updated.Status) {
		return villa, ErrInvalidInput
	}

	images := mergeImages(villa.Images.Data(), retainedPublicIDs, newImages)
	if len(images) == 0 {
		return villa, ErrInvalidInput
	}

	updates := map[string]any{
		"images": datatypes.NewJSONType(images),
	}
	if v := strings.TrimSpace(updated.Name); v != "" {
		updates["name"] = v
	}
	if updated.Description != "" {
		updates["description"] = updated.Description
	}
	if updated.Price != "" {
		updates["price"] = updated.Price
	}
	if updated.Capacity != "" {
		updates["capacity"] = updated.Capacity
	}
	if updated.Status != "" {
		updates["status"] = updated.Status
	}
	if updated.Owner != "" {
		updates["owner"] = updated.Owner
	}
	if updated.OwnerID != 0 {
		updates["owner_id"] = updated.OwnerID
	}
	updates["facilities"] = updated.Facilities

	if err := s.DB.Model(&villa).Updates(updates).Error; err != nil {
		return villa, fmt.Errorf("failed to update villa: %w", err)
	}
	return s.GetByID(id)
}

// PatchStatus flips only the status column.
func (s *VillaService) PatchStatus(id uint, status string) (models.Villa, error) {
	if !models.ValidVillaStatus(status) {
		return models.Villa{}, ErrInvalidInput
	}
	villa, err := s.GetByID(id)
	if err != nil {
		return villa, err
	}
	if err := s.DB.Model(&villa).Update("status", status).Error; err != nil {
		return villa, fmt.Errorf("failed to update villa status: %w", err)
	}
	villa.Status = status
	return villa, nil
}

func (s *VillaService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.DB.Delete(&models.Villa{}, id).Error
}
