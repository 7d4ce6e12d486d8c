package rev

import "errors"

var (
	// ErrRegisterExists is returned when Alloc reuses a live register name.
	ErrRegisterExists = errors.New("rev: register already allocated")

	// ErrUnknownRegister is returned when an op references a register that is not live.
	ErrUnknownRegister = errors.New("rev: unknown register")

	// ErrAncillaNotZero is returned by a verifying Free when the register still
	// holds a non-zero value. It always indicates a defect in the program.
	ErrAncillaNotZero = errors.New("rev: ancilla not returned to zero")

	// ErrFlagWritten is returned when a Branch body writes its own flag.
	ErrFlagWritten = errors.New("rev: branch body writes its flag")

	// ErrNotFlag is returned when a 1-bit flag is required but the register is wider.
	ErrNotFlag = errors.New("rev: register is not a 1-bit flag")

	// ErrSlotOutOfRange is returned for a slot or dynamic index outside a register.
	ErrSlotOutOfRange = errors.New("rev: slot out of range")

	// ErrBadWidth is returned for register widths outside [1..64] or zero slots.
	ErrBadWidth = errors.New("rev: invalid register shape")

	// ErrLookupMiss is returned when a table is addressed outside its dimensions.
	ErrLookupMiss = errors.New("rev: lookup key out of table range")

	// ErrAliasing is returned when an op would read and write the same register.
	ErrAliasing = errors.New("rev: destination aliases an operand")

	// ErrPrecision is returned for fixed-point precisions outside [1..31].
	ErrPrecision = errors.New("rev: invalid fixed-point precision")

	// ErrNotRepresentable is returned when a value cannot be encoded (negative or NaN).
	ErrNotRepresentable = errors.New("rev: value not representable")
)
