// Package domain 包含代理人主数据的领域模型。
// 代理人主数据名义上属于代理人微服务，这里保留一份本地副本用于存在性校验。
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 领域错误
var (
	ErrAgentNotFound  = errors.New("agent not found")
	ErrDuplicateAgent = errors.New("agentId or email already exists")
	ErrMissingFields  = errors.New("missing required fields")
)

// Agent 代理人记录，纯值对象
type Agent struct {
	gorm.Model  `json:"-"`
	AgentID     int64     `gorm:"column:agent_id;uniqueIndex;not null" json:"agentId"`
	AgentName   string    `gorm:"column:agent_name;type:varchar(128);not null" json:"agentName"`
	Email       string    `gorm:"column:email;type:varchar(128);uniqueIndex;not null" json:"email"`
	Phone       string    `gorm:"column:phone;type:varchar(32);not null" json:"phone"`
	AgencyCode  string    `gorm:"column:agency_code;type:varchar(64)" json:"agencyCode,omitempty"`
	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
}

// TableName 指定表名
func (Agent) TableName() string {
	return "agents"
}

// Validate 校验必填字段，错误信息列出缺失字段名
func (a *Agent) Validate() error {
	var missing []string
	if a.AgentID == 0 {
		missing = append(missing, "agentId")
	}
	if a.AgentName == "" {
		missing = append(missing, "agentName")
	}
	if a.Email == "" {
		missing = append(missing, "email")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// AgentRepository 代理人仓储接口
type AgentRepository interface {
	// Create 创建代理人，唯一键冲突时返回 ErrDuplicateAgent
	Create(ctx context.Context, agent *Agent) error
	// List 列出全部代理人
	List(ctx context.Context) ([]*Agent, error)
	// GetByID 按 agentId 获取代理人，不存在时返回 ErrAgentNotFound
	GetByID(ctx context.Context, agentID int64) (*Agent, error)
}
