package models

import (
	"time"

	"github.com/hollowlog/burrow/internal/snowflake"
	"gorm.io/gorm"
)

// An Instance is a domain managed by this server.
// An Instance has one Admin Account, used to sign outbound requests that are
// not attributable to a particular local actor.
type Instance struct {
	ID          snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	UpdatedAt   time.Time
	Domain      string `gorm:"size:64;uniqueIndex"`
	Title       string `gorm:"size:64"`
	Description string
	AdminID     *snowflake.ID
	Admin       *Account `gorm:"constraint:OnDelete:CASCADE;<-:create;"`
}

type Instances struct {
	db *gorm.DB
}

func NewInstances(db *gorm.DB) *Instances {
	return &Instances{db: db}
}

// FindByDomain finds an instance by domain.
func (i *Instances) FindByDomain(domain string) (*Instance, error) {
	var instance Instance
	return &instance, i.db.Preload("Admin").Preload("Admin.Actor").Where("domain = ?", domain).Take(&instance).Error
}

// Create creates a new instance record.
func (i *Instances) Create(domain, title, description string) (*Instance, error) {
	instance := Instance{
		ID:          snowflake.Now(),
		Domain:      domain,
		Title:       title,
		Description: description,
	}
	return &instance, i.db.Create(&instance).Error
}
