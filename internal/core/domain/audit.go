package domain

import (
	"fmt"
	"time"
)

// AuditAction is the verb recorded against a committed mutation.
type AuditAction string

const (
	ActionCreate   AuditAction = "CREATE"
	ActionUpdate   AuditAction = "UPDATE"
	ActionDelete   AuditAction = "DELETE"
	ActionGenerate AuditAction = "GENERATE"
)

// EntityKind enumerates the domain entities the ledger can reference.
type EntityKind string

const (
	KindScholar      EntityKind = "SCHOLAR"
	KindAllowance    EntityKind = "ALLOWANCE"
	KindMeeting      EntityKind = "MEETING"
	KindGathering    EntityKind = "GATHERING"
	KindAnnouncement EntityKind = "ANNOUNCEMENT"
	KindDocument     EntityKind = "DOCUMENT"
)

// AuditRecord is one immutable ledger entry. Exactly one exists per committed
// domain mutation; it is written in the same storage transaction as the
// mutation and is never updated or deleted afterwards.
type AuditRecord struct {
	AuditID     string      `json:"auditID"` // Primary Key (UUID)
	Action      AuditAction `json:"action"`
	EntityKind  EntityKind  `json:"entityKind"`
	EntityID    string      `json:"entityID"`
	Description string      `json:"description"`
	ActorID     string      `json:"actorID"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// auditVerbs maps actions to the past-tense verb used in ledger descriptions.
var auditVerbs = map[AuditAction]string{
	ActionCreate:   "created",
	ActionUpdate:   "updated",
	ActionDelete:   "deleted",
	ActionGenerate: "generated",
}

// DescribeAudit composes the human-readable ledger description from the
// action, the entity kind and the actor's display name.
func DescribeAudit(action AuditAction, kind EntityKind, actorName string) string {
	verb, ok := auditVerbs[action]
	if !ok {
		verb = "touched"
	}
	return fmt.Sprintf("%s %s a %s record", actorName, verb, kind)
}
