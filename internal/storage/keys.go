package storage

// Persisted keys shared by the admin console and the guest flow.
const (
	KeyHotels          = "hotels"
	KeyReservations    = "reservations"
	KeyAdminAuth       = "admin_authenticated"
	KeyLastReservation = "lastReservation" // session scope
	KeySearchCriteria  = "searchCriteria"  // session scope
)
