package bmp280

// Candidate I2C addresses, probed in this order.
const (
	AddressPrimary   = 0x76
	AddressSecondary = 0x77
)

// ChipID is the value of the identity register on a BMP280.
const ChipID = 0x58

// Registers.
const (
	regChipID = 0xD0
	regCtrl   = 0xF4
	regCalib  = 0x88
	regData   = 0xF7
)

// ctrlNormal selects temperature oversampling x1, pressure oversampling x1
// and normal (free-running) mode.
const ctrlNormal = 0x27

// Block sizes.
const (
	CalibLen = 24 // 0x88..0x9F
	DataLen  = 6  // press_msb..temp_xlsb
)

// Candidates returns the probe order.
func Candidates() []uint16 { return []uint16{AddressPrimary, AddressSecondary} }
