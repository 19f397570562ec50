package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Staff() StaffRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	IDs() IDGenerator
}
