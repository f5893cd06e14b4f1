package model

import "time"

type AuditEventType string

const (
	AuditCommandExecuted    AuditEventType = "command.executed"
	AuditCommandDestructive AuditEventType = "command.destructive"
	AuditResourceScaled     AuditEventType = "resource.scaled"
	AuditResourceRestarted  AuditEventType = "resource.restarted"
	AuditResourceDeleted    AuditEventType = "resource.deleted"
	AuditManifestApplied    AuditEventType = "manifest.applied"
	AuditHelmRelease        AuditEventType = "helm.release"
	AuditClusterLifecycle   AuditEventType = "cluster.lifecycle"
)

// AuditEntry records one mutating operation against a cluster, whether it
// came in as a raw kubectl line or a structured API call.
type AuditEntry struct {
	ID         string         `json:"id"`
	EventType  AuditEventType `json:"event_type"`
	Command    string         `json:"command"`
	Subcommand string         `json:"subcommand"`
	Namespace  string         `json:"namespace"`
	Remote     string         `json:"remote"`
	Detail     string         `json:"detail"`
	CreatedAt  time.Time      `json:"created_at"`
}

func NewAuditEntry(eventType AuditEventType, command, subcommand string) AuditEntry {
	return AuditEntry{
		ID:         generateID(),
		EventType:  eventType,
		Command:    command,
		Subcommand: subcommand,
		CreatedAt:  time.Now().UTC(),
	}
}

func (a AuditEntry) WithNamespace(namespace string) AuditEntry {
	a.Namespace = namespace
	return a
}

func (a AuditEntry) WithRemote(remote string) AuditEntry {
	a.Remote = remote
	return a
}

func (a AuditEntry) WithDetail(detail string) AuditEntry {
	a.Detail = detail
	return a
}
