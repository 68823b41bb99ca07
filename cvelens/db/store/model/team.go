package model

import (
	"time"

	"github.com/cvelens/cvelens/cvelens/db"
)

const TeamTableName = "teams"

type TeamModel struct {
	ID          uint   `gorm:"column:id;primary_key"`
	Name        string `gorm:"column:name;unique_index;not null"`
	Description string `gorm:"column:description;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewTeamModel(team db.Team) TeamModel {
	return TeamModel{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
	}
}

func (TeamModel) TableName() string {
	return TeamTableName
}

func (m TeamModel) Inflate() db.Team {
	return db.Team{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
	}
}
