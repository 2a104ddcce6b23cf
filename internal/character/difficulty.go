package character

import "github.com/d2edit/saveedit/internal/bitio"

// Difficulty is one CharacterDifficulty byte (spec §3): active flag plus
// current act, read and written in place at a fixed file offset.
type Difficulty struct {
	active bool
	act    int
}

func decodeDifficulty(b byte) Difficulty {
	c := bitio.NewCursor([]byte{b})
	return Difficulty{
		active: c.ReadUint(0, difficultyActiveWidth) == 1,
		act:    int(c.ReadUint(difficultyActiveWidth, difficultyActWidth)),
	}
}

func (d Difficulty) encode() byte {
	c := bitio.NewZeroCursor(8)
	v := uint64(0)
	if d.active {
		v = 1
	}
	c.WriteUint(0, difficultyActiveWidth, v)
	c.WriteUint(difficultyActiveWidth, difficultyActWidth, uint64(d.act))
	return c.Bytes()[0]
}

// Active reports whether this is the currently selected difficulty.
func (d Difficulty) Active() bool { return d.active }

// Act returns the current act, 0-based.
func (d Difficulty) Act() int { return d.act }

// SetActive flips the active flag.
func (d *Difficulty) SetActive(active bool) { d.active = active }

// SetAct overwrites the current act.
func (d *Difficulty) SetAct(act int) { d.act = act }
