package controllers

import (
	"net/http"

	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type createVillaPayload struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Price       string              `json:"price" binding:"required"`
	Capacity    string              `json:"capacity" binding:"required"`
	Status      string              `json:"status" binding:"omitempty,oneof=available booked maintenance"`
	Owner       string              `json:"owner"`
	OwnerID     uint                `json:"ownerId"`
	Facilities  models.Facilities   `json:"facilities"`
	Images      []models.VillaImage `json:"images" binding:"required,min=1"`
}

type updateVillaPayload struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       string            `json:"price"`
	Capacity    string            `json:"capacity"`
	Status      string            `json:"status" binding:"omitempty,oneof=available booked maintenance"`
	Owner       string            `json:"owner"`
	OwnerID     uint              `json:"ownerId"`
	Facilities  models.Facilities `json:"facilities"`

	// image reconciliation: keep these publicIds, append these uploads
	RetainedPublicIDs []string            `json:"retainedPublicIds"`
	NewImages         []models.VillaImage `json:"newImages"`
}

type patchVillaStatusPayload struct {
	Status string `json:"status" binding:"required,oneof=available booked maintenance"`
}

type VillaController struct {
	VillaSvc *services.VillaService
}

func NewVillaController(svc *services.VillaService) *VillaController {
	return &VillaController{VillaSvc: svc}
}

func (vc *VillaController) GetVillas(c *gin.Context) {
	villas, err := vc.VillaSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, villas)
}

func (vc *VillaController) GetVillaByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	villa, err := vc.VillaSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, villa)
}

func (vc *VillaController) CreateVilla(c *gin.Context) {
	var payload createVillaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	villa := models.Villa{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Capacity:    payload.Capacity,
		Status:      payload.Status,
		Owner:       payload.Owner,
		OwnerID:     payload.OwnerID,
		Facilities:  datatypes.NewJSONType(payload.Facilities),
		Images:      datatypes.NewJSONType(payload.Images),
	}

	created, err := vc.VillaSvc.Create(villa)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, created)
}

func (vc *VillaController) UpdateVilla(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload updateVillaPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	updated := models.Villa{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Capacity:    payload.Capacity,
		Status:      payload.Status,
		Owner:       payload.Owner,
		OwnerID:     payload.OwnerID,
		Facilities:  datatypes.NewJSONType(payload.Facilities),
	}

	villa, err := vc.VillaSvc.Update(id, updated, payload.RetainedPublicIDs, payload.NewImages)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, villa)
}

// PatchVillaStatus handles PATCH /api/villas/:id — status flips only.
func (vc *VillaController) PatchVillaStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload patchVillaStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	villa, err := vc.VillaSvc.PatchStatus(id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, villa)
}

func (vc *VillaController) DeleteVilla(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := vc.VillaSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "villa deleted")
}
