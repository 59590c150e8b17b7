package driver

// decodeLoop consumes command objects until a note object is decoded, which
// ends the decode for the current channel tick. Command objects (0xEA-0xFF
// and the short forms 0x8n-0xBn) never consume a tick by themselves; note
// objects (high bit clear) always do.
func (d *Driver) decodeLoop(ch *Channel) {
	for {
		if ch.atEnd() {
			d.handleEnd(ch)
			if !ch.active {
				return
			}
			continue
		}
		op := ch.readByte()
		if op&0x80 == 0 {
			d.decodeNote(ch, op)
			return
		}

		switch {
		case op >= 0x80 && op <= 0x8F:
			n := op & 0x0F
			if n >= 1 && n <= 8 {
				ch.octave = n
			}
		case op >= 0x90 && op <= 0x9F:
			ch.volume = op & 0x0F
			if ch.volume > 15 {
				ch.volume = 15
			}
		case op >= 0xA0 && op <= 0xAF:
			ch.volume = clampVolume(int(ch.volume) + int(op&0x0F))
		case op >= 0xB0 && op <= 0xBF:
			ch.volume = clampVolume(int(ch.volume) - int(op&0x0F))
		case op == 0xEA:
			d.opEG(ch)
		case op == 0xEB:
			d.opNoisePeriod(ch)
		case op == 0xEC:
			d.opNoisePeriodDelta(ch)
		case op == 0xED, op == 0xEE, op == 0xEF:
			d.opMixer(ch, op)
		case op == 0xF0:
			d.opNestEnter(ch)
		case op == 0xF1:
			d.opNestLoopShort(ch)
		case op == 0xF2:
			d.opNestLoopLong(ch)
		case op == 0xF3:
			d.opNestAltLast(ch)
		case op == 0xF4:
			d.iCommandValue = ch.readByte()
		case op == 0xF5:
			d.opLFOProgram(ch)
		case op == 0xF6:
			// LFO on/off toggle: reserved, current policy is a no-op.
		case op == 0xF7:
			ch.lplusDefault = ch.readByte()
		case op == 0xF8:
			d.opTempo(ch)
		case op == 0xF9:
			ch.lDefault = ch.readByte()
		case op == 0xFA:
			ch.qDefault = ch.readByte()
		case op == 0xFB:
			ch.detune = int8(ch.readByte())
		case op == 0xFC:
			ch.detune = addSignMagnitude(ch.detune, int8(ch.readByte()))
		case op == 0xFD:
			ch.vibDeltaBase = int8(ch.readByte())
			ch.flags.setTo(FlagVibOn, ch.vibDeltaBase != 0)
		case op == 0xFE:
			ch.jReturnOffset = ch.offset
			ch.jOctaveBackup = ch.octave << 4
		case op == 0xFF:
			d.handleEnd(ch)
			if !ch.active {
				return
			}
		default:
			ch.UnknownOpcodes++
		}
	}
}

// opEG programs the software envelope (command S). p2..p5 are only read
// when p1 != 0, a short form for "no envelope".
func (d *Driver) opEG(ch *Channel) {
	p1 := ch.readByte()
	ch.egWidthBase = int8(p1)
	if p1 != 0 {
		ch.egCountBase = ch.readByte()
		ch.egDeltaBase = int8(ch.readByte())
		ch.eg2WidthBase = int8(ch.readByte())
		ch.eg2CountBase = ch.readByte()
	}
}

func (d *Driver) opNoisePeriod(ch *Channel) {
	v := ch.readByte()
	d.reg6Value = v
	d.emitReg(RegNoisePer, v)
}

func (d *Driver) opNoisePeriodDelta(ch *Channel) {
	delta := int8(ch.readByte())
	v := int(d.reg6Value) + int(delta)
	if v < 0 {
		v = 0
	}
	if v > 31 {
		v = 31
	}
	d.reg6Value = uint8(v)
	d.emitReg(RegNoisePer, d.reg6Value)
}

// opMixer implements P1/P2/P3 (0xED/0xEE/0xEF): each channel owns a
// tone-disable bit and a noise-disable bit (active-high disable) in the
// shared mixer register. P1 silences the channel entirely (both
// disabled); P2 selects tone only; P3 selects tone plus noise. This
// three-way mapping is this repository's resolution of an ambiguity the
// source leaves underspecified beyond the worked P1 example (see
// DESIGN.md).
func (d *Driver) opMixer(ch *Channel, op uint8) {
	tbit := uint8(1) << uint(ch.channelIndex)
	nbit := uint8(1) << uint(ch.channelIndex+3)

	switch op {
	case 0xED: // P1: silence
		d.reg7Value |= tbit
		d.reg7Value |= nbit
	case 0xEE: // P2: tone only
		d.reg7Value &^= tbit
		d.reg7Value |= nbit
	case 0xEF: // P3: tone plus noise
		d.reg7Value &^= tbit
		d.reg7Value &^= nbit
	}
	d.emitReg(RegEnable, d.reg7Value)
}

func (d *Driver) opNestEnter(ch *Channel) {
	count := ch.readByte()
	if ch.nestDepth >= len(ch.nestFlag) {
		return
	}
	ch.lBackup = ch.lDefault
	ch.lplusBackup = ch.lplusDefault
	ch.octaveBackup = ch.octave
	ch.nestFlag[ch.nestDepth] = count
	ch.nestDepth++
}

func (d *Driver) opNestLoopShort(ch *Channel) {
	off8 := ch.readByte()
	offset := int(int16(uint16(off8) | 0xFF00))
	d.nestLoopBack(ch, offset)
}

func (d *Driver) opNestLoopLong(ch *Channel) {
	offset := int(int16(ch.readUint16()))
	d.nestLoopBack(ch, offset)
}

func (d *Driver) nestLoopBack(ch *Channel, offset int) {
	if ch.nestDepth == 0 {
		return
	}
	top := ch.nestDepth - 1
	ch.nestFlag[top]--
	if ch.nestFlag[top] != 0 {
		ch.offset += offset
		if ch.offset < 0 {
			ch.offset = 0
		}
		ch.lDefault = ch.lBackup
		ch.lplusDefault = ch.lplusBackup
		ch.octave = ch.octaveBackup
	} else {
		ch.nestDepth--
	}
}

func (d *Driver) opNestAltLast(ch *Channel) {
	offset := int(int16(ch.readUint16()))
	if ch.nestDepth == 0 {
		return
	}
	top := ch.nestDepth - 1
	if ch.nestFlag[top] == 1 {
		ch.nestDepth--
		ch.offset += offset
	}
}

// opLFOProgram implements M: program the vibrato LFO and immediately
// re-initialize it.
func (d *Driver) opLFOProgram(ch *Channel) {
	p1 := ch.readByte()
	p2 := ch.readByte()
	p3 := ch.readByte()
	p4 := ch.readByte()

	ch.vibWaitBase = p1
	ch.vibCountBase = p2
	ch.vibAmpBase = 2 * p3
	ch.vibDeltaBase = int8(p4)
	ch.flags.setTo(FlagVibOn, p4 != 0)

	d.reinitLFO(ch)
}

func (d *Driver) opTempo(ch *Channel) {
	t96 := ch.readByte()
	ch.readByte() // legacy port value, discarded but consumed
	d.tempoVal = t96
	d.bpmX10 = bpmX10(t96)
}

// handleEnd implements opcode 0xFF and the end-of-buffer overrun case,
// which is treated as equivalent to an explicit 0xFF with no jump-return
// set.
func (d *Driver) handleEnd(ch *Channel) {
	if ch.jReturnOffset != 0 {
		ch.offset = ch.jReturnOffset
		ch.octave = ch.jOctaveBackup >> 4
		return
	}
	ch.active = false
}

func (d *Driver) decodeNote(ch *Channel, op uint8) {
	newTie := op&0x40 != 0
	lengthCode := (op >> 4) & 0x03
	pitch := op & 0x0F

	var length uint16
	switch lengthCode {
	case 0:
		length = uint16(ch.lDefault)
	case 1:
		length = uint16(ch.lplusDefault)
	case 2:
		length = uint16(ch.readByte())
	case 3:
		length = ch.readUint16()
	}

	ch.waitCounter = length
	if newTie {
		ch.qCounter = 0
	} else {
		ch.qCounter = ch.qDefault
	}
	if length > 0 && uint16(ch.qCounter) >= length {
		ch.qCounter = uint8(length - 1)
	} else if length == 0 {
		ch.qCounter = 0
	}

	prevTie := ch.tieFlag()

	if pitch == 0 {
		ch.flags.set(FlagRest)
		d.writeVolume(ch, 0)
		d.emitNoteEvent(ch, ch.octave, 0, 0, length, true)
	} else {
		ch.flags.clear(FlagRest)

		if !prevTie && ch.egWidthBase != 0 {
			ch.flags.clear(FlagEGStage2)
			ch.egCountWork = ch.egCountBase
			ch.egWidthWork = 0
		}

		if ch.flags.has(FlagVibOn) {
			if !(prevTie && d.opts.KeepVibratoOnTie) {
				d.reinitLFO(ch)
			}
		}

		period := tone(ch.octave, pitch)
		period = applyDetune(period, ch.detune)
		ch.freqValue = period

		if !prevTie {
			d.writeVolume(ch, 0)
		}

		d.emitReg(regAFine(ch.channelIndex), uint8(period&0xFF))
		d.emitReg(regACoarse(ch.channelIndex), uint8((period>>8)&0x0F))

		var vol uint8
		if prevTie {
			vol = clampVolume(int(ch.volume) + int(ch.volumeAdjust))
		} else {
			vol = ch.volume
		}
		d.writeVolume(ch, vol)

		d.emitNoteEvent(ch, ch.octave, pitch, vol, length, false)
	}

	ch.flags.setTo(FlagTie, newTie)
}
