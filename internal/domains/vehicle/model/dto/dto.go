package dto

import (
	"rental/internal/domains/vehicle/model"
	"rental/shared"
	gDto "rental/shared/dto"
	gModel "rental/shared/model"
	"time"

	"github.com/google/uuid"
)

type CreateVehicleRequest struct {
	Type          string `json:"type"           validate:"required,max=64"`
	Name          string `json:"name"           validate:"omitempty,max=255"`
	OwnerID       string `json:"owner_id"       validate:"omitempty,max=64"`
	Active        *bool  `json:"active"         validate:"omitempty"`
	ProvisionDays int    `json:"provision_days" validate:"omitempty,min=0,max=31"`
}

func (c *CreateVehicleRequest) ToModel(ownerID, actor string, at time.Time) model.Vehicle {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	var owner *string
	if ownerID != "" {
		owner = &ownerID
	}

	return model.Vehicle{
		ID:       uuid.NewString(),
		Type:     c.Type,
		Name:     c.Name,
		OwnerID:  owner,
		Active:   active,
		Metadata: gModel.NewMetadata(at, actor),
	}
}

type UpdateVehicleRequest struct {
	Type    string  `db:"type"     json:"type"     validate:"omitempty,max=64"`
	Name    string  `db:"name"     json:"name"     validate:"omitempty,max=255"`
	OwnerID *string `db:"owner_id" json:"owner_id" validate:"omitempty,max=64"`
	Active  *bool   `db:"active"   json:"active"   validate:"omitempty"`
}

type VehicleResponse struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Name    string  `json:"name"`
	OwnerID *string `json:"owner_id,omitempty"`
	Active  bool    `json:"active"`
	gDto.Metadata
}

func (r *VehicleResponse) FromModel(model model.Vehicle) {
	r.ID = model.ID
	r.Type = model.Type
	r.Name = model.Name
	r.OwnerID = model.OwnerID
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetVehiclesResponse) FromModels(models []model.Vehicle, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Vehicles = make([]VehicleResponse, len(models))
	for i, mod := range models {
		r.Vehicles[i].FromModel(mod)
	}
}
