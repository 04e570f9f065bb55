package model

import "time"

// Physical room where scans are recorded. Integer ID because the RFID
// gateway sends location_id as a plain int.
type LocationModel struct {
	LocationID int `gorm:"primaryKey;autoIncrement;column:location_id" json:"location_id"`

	LocationRoom string `gorm:"size:120;not null;uniqueIndex;column:location_room" json:"location_room"`

	LocationCreatedAt time.Time `gorm:"column:location_created_at;autoCreateTime" json:"location_created_at"`
}

func (LocationModel) TableName() string { return "locations" }
