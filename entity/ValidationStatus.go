package entity

// ValidationStatus ถูกเปลี่ยนโดยระบบสแกน QR ของร้าน (อยู่นอก backend นี้)
type ValidationStatus string

const (
	ValidationPending    ValidationStatus = "pending"
	ValidationSuccessful ValidationStatus = "successful"
	ValidationCancelled  ValidationStatus = "cancelled"
)
