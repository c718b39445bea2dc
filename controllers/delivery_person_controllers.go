package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedidopronto/delivery-app/models"
	"github.com/pedidopronto/delivery-app/utils"
)

type DeliveryPersonController struct {
	DB *gorm.DB
}

func NewDeliveryPersonController(db *gorm.DB) *DeliveryPersonController {
	return &DeliveryPersonController{DB: db}
}

// GetAllDeliveryPeople, optionally only the active ones
func (dc *DeliveryPersonController) GetAllDeliveryPeople(c *gin.Context) {
	query := dc.DB.Order("name")
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var people []models.DeliveryPerson
	if err := query.Find(&people).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of delivery people", people)
}

type deliveryPersonRequest struct {
	Name           string  `json:"name" binding:"required"`
	VehicleDetails *string `json:"vehicle_details"`
	LicensePlate   *string `json:"license_plate"`
	IsActive       *bool   `json:"is_active"`
}

// CreateDeliveryPerson
func (dc *DeliveryPersonController) CreateDeliveryPerson(c *gin.Context) {
	var req deliveryPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	person := models.DeliveryPerson{
		Name:           req.Name,
		VehicleDetails: req.VehicleDetails,
		LicensePlate:   req.LicensePlate,
		IsActive:       isActive,
		CreatedAt:      time.Now(),
	}
	if err := dc.DB.Create(&person).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Delivery person created", person)
}

// UpdateDeliveryPerson
func (dc *DeliveryPersonController) UpdateDeliveryPerson(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("person_id"))

	var person models.DeliveryPerson
	if err := dc.DB.First(&person, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req deliveryPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	person.Name = req.Name
	person.VehicleDetails = req.VehicleDetails
	person.LicensePlate = req.LicensePlate
	if req.IsActive != nil {
		person.IsActive = *req.IsActive
	}

	if err := dc.DB.Save(&person).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery person updated", person)
}

// DeleteDeliveryPerson is blocked while the person is out on a delivery.
func (dc *DeliveryPersonController) DeleteDeliveryPerson(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("person_id"))

	var person models.DeliveryPerson
	if err := dc.DB.First(&person, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var active int64
	err := dc.DB.Model(&models.Order{}).
		Where("delivery_person_id = ? AND status = ?", id, models.StatusOutForDelivery).
		Count(&active).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if active > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDeleteBlocked)
		return
	}

	if err := dc.DB.Delete(&person).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery person deleted", gin.H{"person_id": id})
}
