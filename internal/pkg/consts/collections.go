package consts

const (
	BooksCollection         = "books"
	MembersCollection       = "members"
	DuesCollection          = "dues"
	ReservationsCollection  = "reservations"
	NotificationsCollection = "notifications"
	FailedEventsCollection  = "failed_events"
)
