package consts

// Notification events delivered to members.
const (
	EventDueIssued             = "DueIssued"
	EventDueReturned           = "DueReturned"
	EventFineSettled           = "FineSettled"
	EventReservedBookAvailable = "ReservedBookAvailable"
)

// Circulation audit events published to Kafka.
const (
	AuditDueIssued   = "due_issued"
	AuditDueReturned = "due_returned"
	AuditFineSettled = "fine_settled"
	AuditDueDeleted  = "due_deleted"
)
