package driver

// tickChannel runs one channel tick: a gate/LFO/EG step while a note is
// sustaining, or the decode loop once its wait counter reaches zero.
func (d *Driver) tickChannel(ch *Channel) {
	if !ch.active {
		return
	}

	ch.waitCounter--
	if ch.waitCounter > 0 {
		if ch.flags.has(FlagRest) {
			return
		}
		if ch.waitCounter == uint16(ch.qCounter) {
			d.writeVolume(ch, 0)
			ch.flags.set(FlagRest)
			return
		}
		if ch.flags.has(FlagVibOn) {
			d.stepLFO(ch)
		}
		if ch.egWidthBase != 0 {
			d.stepEG(ch)
		}
		return
	}

	d.decodeLoop(ch)
}

// reinitLFO (re)starts the vibrato LFO from its base parameters, run when a
// non-tied note with VIB_ON starts or when command M re-programs the LFO.
func (d *Driver) reinitLFO(ch *Channel) {
	ch.vibWaitWork = ch.vibWaitBase
	ch.vibCountWork = ch.vibCountBase
	ch.vibAmpWork = ch.vibAmpBase
	ch.vibOffset = 0
}

func (d *Driver) stepLFO(ch *Channel) {
	if ch.vibWaitWork > 0 {
		ch.vibWaitWork--
		return
	}

	if ch.vibCountWork > 0 {
		ch.vibCountWork--
	}
	if ch.vibCountWork > 0 {
		return
	}
	ch.vibCountWork = ch.vibCountBase
	if ch.vibCountWork == 0 {
		ch.vibCountWork = 1
	}

	step := ch.vibDeltaBase & 0x7F
	if ch.flags.has(FlagVibPM) {
		ch.vibOffset -= int16(step)
	} else {
		ch.vibOffset += int16(step)
	}

	period := int32(ch.freqValue) + int32(ch.vibOffset)
	period = clamp32(period, 1, 0xFFF)
	d.emitReg(regAFine(ch.channelIndex), uint8(period&0xFF))
	d.emitReg(regACoarse(ch.channelIndex), uint8((period>>8)&0x0F))

	if ch.vibAmpBase != 0 {
		if ch.vibAmpWork > 0 {
			ch.vibAmpWork--
		}
		if ch.vibAmpWork == 0 {
			ch.vibAmpWork = ch.vibAmpBase
			ch.flags.setTo(FlagVibPM, !ch.flags.has(FlagVibPM))
		}
	}
}

// stepEG runs one tick of the two-stage software envelope.
func (d *Driver) stepEG(ch *Channel) {
	if !ch.flags.has(FlagEGStage2) {
		if ch.egCountWork > 0 {
			ch.egCountWork--
		}
		if ch.egCountWork != 0 {
			return
		}

		if ch.egWidthWork != ch.egWidthBase {
			ch.egCountWork = ch.egCountBase
			ch.egWidthWork += ch.egDeltaBase
			ch.volumeAdjust = ch.egWidthWork
			d.writeVolume(ch, clampVolume(int(ch.volume)+int(ch.volumeAdjust)))
			return
		}

		ch.flags.set(FlagEGStage2)
		ch.egWidthWork = 0
		ch.egCountWork = ch.eg2CountBase & 0x7F
		if ch.eg2WidthBase != 0 {
			ch.volumeAdjust = ch.eg2WidthBase + ch.egWidthBase
			d.writeVolume(ch, clampVolume(int(ch.volume)+int(ch.volumeAdjust)))
		}
		return
	}

	if ch.eg2WidthBase == 0 {
		return
	}
	if ch.egCountWork > 0 {
		ch.egCountWork--
	}
	if ch.egCountWork != 0 {
		return
	}

	ch.egCountWork = ch.eg2CountBase & 0x7F
	if ch.egWidthWork < 15 {
		ch.egWidthWork++
	}

	var delta int8
	if ch.eg2CountBase&0x80 != 0 {
		delta = -ch.egWidthWork
	} else {
		delta = ch.egWidthWork
	}
	ch.volumeAdjust = delta + ch.egWidthBase + ch.eg2WidthBase
	d.writeVolume(ch, clampVolume(int(ch.volume)+int(ch.volumeAdjust)))
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
