package driver

// AY-3-8910 / YM2149 register numbers.
const (
	RegAFine    uint8 = 0
	RegACoarse  uint8 = 1
	RegBFine    uint8 = 2
	RegBCoarse  uint8 = 3
	RegCFine    uint8 = 4
	RegCCoarse  uint8 = 5
	RegNoisePer uint8 = 6
	RegEnable   uint8 = 7
	RegAVol     uint8 = 8
	RegBVol     uint8 = 9
	RegCVol     uint8 = 10
	RegEFine    uint8 = 11
	RegECoarse  uint8 = 12
	RegEShape   uint8 = 13
	RegPortA    uint8 = 14
	RegPortB    uint8 = 15

	RegCount = 16
)

// regAVol, regAFine and regACoarse for channel index 0..2.
func regAVol(ch int) uint8    { return RegAVol + uint8(ch) }
func regAFine(ch int) uint8   { return RegAFine + uint8(ch)*2 }
func regACoarse(ch int) uint8 { return RegACoarse + uint8(ch)*2 }
