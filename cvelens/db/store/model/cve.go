package model

import (
	"time"

	"github.com/cvelens/cvelens/cvelens/db"
)

const CVETableName = "cves"

type CVEModel struct {
	ID             uint       `gorm:"column:id;primary_key"`
	CVEID          string     `gorm:"column:cve_id;unique_index;not null"`
	URL            string     `gorm:"column:url"`
	Description    string     `gorm:"column:description;type:text"`
	Severity       string     `gorm:"column:severity"`
	CVSSScore      *float64   `gorm:"column:cvss_score"`
	PublishedDate  *time.Time `gorm:"column:published_date"`
	IsEmbargoed    bool       `gorm:"column:is_embargoed;not null"`
	EmbargoEndDate *time.Time `gorm:"column:embargo_end_date"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewCVEModel(cve db.CVE) CVEModel {
	return CVEModel{
		ID:             cve.ID,
		CVEID:          cve.CVEID,
		URL:            cve.URL,
		Description:    cve.Description,
		Severity:       cve.Severity,
		CVSSScore:      cve.CVSSScore,
		PublishedDate:  cve.PublishedDate,
		IsEmbargoed:    cve.IsEmbargoed,
		EmbargoEndDate: cve.EmbargoEndDate,
	}
}

func (CVEModel) TableName() string {
	return CVETableName
}

func (m CVEModel) Inflate() db.CVE {
	return db.CVE{
		ID:             m.ID,
		CVEID:          m.CVEID,
		URL:            m.URL,
		Description:    m.Description,
		Severity:       m.Severity,
		CVSSScore:      m.CVSSScore,
		PublishedDate:  m.PublishedDate,
		IsEmbargoed:    m.IsEmbargoed,
		EmbargoEndDate: m.EmbargoEndDate,
	}
}
