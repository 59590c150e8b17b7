package driver

// Channel holds the mutable state of one PSG voice (A, B or C). It is owned
// exclusively by a Driver; the byte slice it reads from is borrowed
// read-only for the lifetime of the loaded song.
type Channel struct {
	data   []byte
	offset int

	waitCounter uint16
	qCounter    uint8

	lDefault     uint8
	lplusDefault uint8
	qDefault     uint8
	volume       uint8
	octave       uint8
	detune       int8

	nestFlag      [4]uint8
	nestDepth     int
	lBackup       uint8
	lplusBackup   uint8
	octaveBackup  uint8 // nest-entry snapshot, restored on loop-back

	jReturnOffset int // 0 means unset
	jOctaveBackup uint8 // J-command snapshot, restored on End with return

	vibWaitBase  uint8
	vibCountBase uint8
	vibAmpBase   uint8
	vibDeltaBase int8

	vibWaitWork  uint8
	vibCountWork uint8
	vibAmpWork   uint8
	vibOffset    int16

	egWidthBase  int8
	egDeltaBase  int8
	eg2WidthBase int8
	egCountBase  uint8
	eg2CountBase uint8

	egCountWork uint8
	egWidthWork int8
	volumeAdjust int8

	flags Flags

	freqValue    uint16
	channelIndex int
	active       bool

	// UnknownOpcodes counts command bytes the decode loop did not
	// recognize, for observability. Unknown opcodes consume no operand
	// bytes, matching the decode table's documented fallback.
	UnknownOpcodes uint64
}

// reset returns the channel to the documented driver_init defaults.
func (c *Channel) reset(index int) {
	*c = Channel{
		lDefault:     24,
		lplusDefault: 192,
		volume:       12,
		octave:       4,
		channelIndex: index,
	}
}

// setData assigns a new bytecode slice and rewinds the cursor, matching the
// driver's song-load behavior: offset=0, wait_counter=1, active=true.
func (c *Channel) setData(data []byte) {
	c.data = data
	c.offset = 0
	c.waitCounter = 1
	c.active = true
}

func (c *Channel) atEnd() bool {
	return c.offset >= len(c.data)
}

// readByte returns the next byte and advances the cursor, or 0xFF (End) if
// the buffer has been exhausted without a terminator: running off the end
// of the stream is treated as an implicit End with no jump-return.
func (c *Channel) readByte() uint8 {
	if c.atEnd() {
		return 0xFF
	}
	b := c.data[c.offset]
	c.offset++
	return b
}

func (c *Channel) readUint16() uint16 {
	lo := c.readByte()
	hi := c.readByte()
	return uint16(lo) | uint16(hi)<<8
}

func (c *Channel) tieFlag() bool { return c.flags.has(FlagTie) }
