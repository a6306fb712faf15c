package types

// Address represents a memory address in the Game Boy's memory,
// which can be read from or written to. The MMU keeps one Address
// per region and points every byte of the 64kB space at one of them.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}

// Memory map boundaries. Every range is inclusive.
const (
	ROMStart      uint16 = 0x0000
	ROMEnd        uint16 = 0x7FFF
	VRAMStart     uint16 = 0x8000
	VRAMEnd       uint16 = 0x9FFF
	ExtRAMStart   uint16 = 0xA000
	ExtRAMEnd     uint16 = 0xBFFF
	WRAMStart     uint16 = 0xC000
	WRAMEnd       uint16 = 0xDFFF
	EchoStart     uint16 = 0xE000
	EchoEnd       uint16 = 0xFDFF
	OAMStart      uint16 = 0xFE00
	OAMEnd        uint16 = 0xFE9F
	UnusableStart uint16 = 0xFEA0
	UnusableEnd   uint16 = 0xFEFF
	IOStart       uint16 = 0xFF00
	IOEnd         uint16 = 0xFF7F
	HRAMStart     uint16 = 0xFF80
	HRAMEnd       uint16 = 0xFFFE
)

// IOPage is the high byte of the I/O page, used by the LDH family
// of instructions.
const IOPage uint16 = 0xFF00

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects and reads the joypad keys.
	P1 HardwareAddress = 0xFF00
	// SB is the serial transfer data register.
	SB HardwareAddress = 0xFF01
	// SC is the serial transfer control register.
	SC HardwareAddress = 0xFF02
	// DIV is incremented at a rate of 16384Hz.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC and reloaded
	// from TMA on overflow.
	TIMA HardwareAddress = 0xFF05
	TMA  HardwareAddress = 0xFF06
	TAC  HardwareAddress = 0xFF07
	// IF requests interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	// NR10 - NR52 are the sound registers.
	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC controls the LCD.
	LCDC HardwareAddress = 0xFF40
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	LYC  HardwareAddress = 0xFF45
	// BGP, OBP0 and OBP1 are the DMG palettes.
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// IE enables interrupts. Writing a 1 to a bit in IE enables the
	// corresponding interrupt.
	IE HardwareAddress = 0xFFFF
)

// PowerUpValues are the values left in the hardware registers by the
// DMG boot ROM, in the order the boot ROM leaves them.
var PowerUpValues = []struct {
	Address HardwareAddress
	Value   uint8
}{
	{P1, 0xCF}, {SB, 0x00}, {SC, 0x7E}, {DIV, 0xAB},
	{TIMA, 0x00}, {TMA, 0x00}, {TAC, 0x00}, {IF, 0xE1},
	{NR10, 0x80}, {NR11, 0xBF}, {NR12, 0xF3}, {NR14, 0xBF},
	{NR21, 0x3F}, {NR22, 0x00}, {NR24, 0xBF},
	{NR30, 0x7F}, {NR31, 0xFF}, {NR32, 0x9F}, {NR34, 0xBF},
	{NR41, 0xFF}, {NR42, 0x00}, {NR43, 0x00}, {NR44, 0xBF},
	{NR50, 0x77}, {NR51, 0xF3}, {NR52, 0xF1},
	{LCDC, 0x91}, {SCY, 0x00}, {SCX, 0x00}, {LYC, 0x00},
	{BGP, 0xFC}, {OBP0, 0xFF}, {OBP1, 0xFF}, {WY, 0x00}, {WX, 0x00},
	{IE, 0x00},
}
