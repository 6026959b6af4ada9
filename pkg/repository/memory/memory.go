package memory

import (
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	risk             *table[*model.Risk]
	incident         *table[*model.Incident]
	control          *table[*model.Control]
	policy           *table[*model.Policy]
	document         *table[*model.Document]
	process          *table[*model.BusinessProcess]
	recoveryPlan     *table[*model.RecoveryPlan]
	bcpTest          *table[*model.BCPTest]
	framework        *table[*model.CustomFramework]
	mapping          *table[*model.FrameworkMapping]
	assessment       *table[*model.MaturityAssessment]
	regulatoryChange *table[*model.RegulatoryChange]
	frameworkUpdate  *table[*model.FrameworkUpdate]
	alert            *table[*model.ComplianceAlert]
	audit            *table[*model.Audit]
	vendor           *table[*model.Vendor]
	user             *userRepository
	tokens           *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:             newTable[*model.Risk]("risk"),
		incident:         newTable[*model.Incident]("incident"),
		control:          newTable[*model.Control]("control"),
		policy:           newTable[*model.Policy]("policy"),
		document:         newTable[*model.Document]("document"),
		process:          newTable[*model.BusinessProcess]("business process"),
		recoveryPlan:     newTable[*model.RecoveryPlan]("recovery plan"),
		bcpTest:          newTable[*model.BCPTest]("BCP test"),
		framework:        newTable[*model.CustomFramework]("framework"),
		mapping:          newTable[*model.FrameworkMapping]("framework mapping"),
		assessment:       newTable[*model.MaturityAssessment]("maturity assessment"),
		regulatoryChange: newTable[*model.RegulatoryChange]("regulatory change"),
		frameworkUpdate:  newTable[*model.FrameworkUpdate]("framework update"),
		alert:            newTable[*model.ComplianceAlert]("compliance alert"),
		audit:            newTable[*model.Audit]("audit"),
		vendor:           newTable[*model.Vendor]("vendor"),
		user:             newUserRepository(),
		tokens:           newTokenStore(),
	}
}

func (m *Memory) Risk() interfaces.EntityRepository[*model.Risk]         { return m.risk }
func (m *Memory) Incident() interfaces.EntityRepository[*model.Incident] { return m.incident }
func (m *Memory) Control() interfaces.EntityRepository[*model.Control]   { return m.control }
func (m *Memory) Policy() interfaces.EntityRepository[*model.Policy]     { return m.policy }
func (m *Memory) Document() interfaces.EntityRepository[*model.Document] { return m.document }

func (m *Memory) Process() interfaces.EntityRepository[*model.BusinessProcess] {
	return m.process
}

func (m *Memory) RecoveryPlan() interfaces.EntityRepository[*model.RecoveryPlan] {
	return m.recoveryPlan
}

func (m *Memory) BCPTest() interfaces.EntityRepository[*model.BCPTest] {
	return m.bcpTest
}

func (m *Memory) Framework() interfaces.EntityRepository[*model.CustomFramework] {
	return m.framework
}

func (m *Memory) Mapping() interfaces.EntityRepository[*model.FrameworkMapping] {
	return m.mapping
}

func (m *Memory) Assessment() interfaces.EntityRepository[*model.MaturityAssessment] {
	return m.assessment
}

func (m *Memory) RegulatoryChange() interfaces.EntityRepository[*model.RegulatoryChange] {
	return m.regulatoryChange
}

func (m *Memory) FrameworkUpdate() interfaces.EntityRepository[*model.FrameworkUpdate] {
	return m.frameworkUpdate
}

func (m *Memory) Alert() interfaces.EntityRepository[*model.ComplianceAlert] {
	return m.alert
}

func (m *Memory) Audit() interfaces.EntityRepository[*model.Audit] {
	return m.audit
}

func (m *Memory) Vendor() interfaces.EntityRepository[*model.Vendor] {
	return m.vendor
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}
