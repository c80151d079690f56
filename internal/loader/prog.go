package loader

import "encoding/binary"

const (
	progMagic   = 0x474F5250 // "PROG" read little-endian
	progMinVer  = 1
	progMaxVer  = 2

	sectionPNAM = 0x4D414E50
	sectionPBAS = 0x53414250
	sectionPBIN = 0x4E494250
	sectionCMNT = 0x544E4D43

	maxProgramNameLength = 256
	maxProgramLength     = 65536
	maxCommentLength     = 1024
	maxBinarySections    = 256
)

// reader walks a PROG byte stream without copying it.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int { return len(r.data) - r.pos }

func (r *reader) u32Optional() (uint32, bool) {
	if r.remaining() == 0 {
		return 0, false
	}
	if r.remaining() < 4 {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos : r.pos+4])
	r.pos += 4
	return v, true
}

func (r *reader) u32() (uint32, error) {
	v, ok := r.u32Optional()
	if !ok {
		return 0, &FormatError{Reason: "unexpected end of PROG file"}
	}
	return v, nil
}

func (r *reader) exact(length int) ([]byte, error) {
	if length < 0 || r.remaining() < length {
		return nil, &FormatError{Reason: "unexpected end of PROG file"}
	}
	b := r.data[r.pos : r.pos+length]
	r.pos += length
	return b, nil
}

func (r *reader) str(maxLength int) (string, error) {
	length, err := r.u32()
	if err != nil {
		return "", err
	}
	if int(length) > maxLength {
		return "", &FormatError{Reason: "string exceeds maximum length in PROG file"}
	}
	if length == 0 {
		return "", nil
	}
	b, err := r.exact(int(length))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoadPROG parses a PROG v1 or v2 image from data and writes its payload
// into mem, returning the program's metadata.
func LoadPROG(data []byte, mem MemoryWriter) (*ProgramImage, error) {
	r := &reader{data: data}

	magic, ok := r.u32Optional()
	if !ok || magic != progMagic {
		return nil, &FormatError{Reason: "invalid PROG magic header"}
	}

	version, err := r.u32()
	if err != nil {
		return nil, err
	}
	if version < progMinVer || version > progMaxVer {
		return nil, &FormatError{Reason: "unsupported PROG version"}
	}

	program := &ProgramImage{}
	if version == 1 {
		err = loadV1(r, mem, program)
	} else {
		err = loadV2(r, mem, program)
	}
	if err != nil {
		return nil, err
	}
	return program, nil
}

func validateBounds(start, length int) error {
	if length < 0 {
		return &FormatError{Reason: "negative length in PROG payload"}
	}
	if start < 0 {
		return &FormatError{Reason: "negative start address in PROG payload"}
	}
	if start+length > maxProgramLength {
		return &FormatError{Reason: "PROG payload exceeds address space"}
	}
	return nil
}

func loadV1(r *reader, mem MemoryWriter, program *ProgramImage) error {
	name, err := r.str(maxProgramNameLength)
	if err != nil {
		return err
	}
	startAddr, err := r.u32()
	if err != nil {
		return err
	}
	length, err := r.u32()
	if err != nil {
		return err
	}
	flag, err := r.u32()
	if err != nil {
		return err
	}

	if err := validateBounds(int(startAddr), int(length)); err != nil {
		return err
	}
	payload, err := r.exact(int(length))
	if err != nil {
		return err
	}
	writeBlock(mem, uint16(startAddr), payload)
	program.Name = name

	var endAddr int
	if length > 0 {
		endAddr = int(startAddr) + int(length) - 1
	} else {
		endAddr = int(startAddr) - 1
	}

	if flag == 0 {
		if length > 0 {
			writeBasicTrailer(mem, endAddr)
		}
		program.BasicArea = true
	} else if length > 0 {
		program.addRegion(uint16(startAddr), uint16(endAddr), "")
	}
	return nil
}

func loadV2(r *reader, mem MemoryWriter, program *ProgramImage) error {
	binarySections := 0

	for {
		sectionID, ok := r.u32Optional()
		if !ok {
			break
		}
		sectionLength, err := r.u32()
		if err != nil {
			return err
		}
		payload, err := r.exact(int(sectionLength))
		if err != nil {
			return err
		}
		section := &reader{data: payload}

		switch sectionID {
		case sectionPNAM:
			name, err := section.str(maxProgramNameLength)
			if err != nil {
				return err
			}
			program.Name = name
		case sectionPBAS:
			programLength, err := section.u32()
			if err != nil {
				return err
			}
			if err := validateBounds(addressStartOfBasicProgram, int(programLength)); err != nil {
				return err
			}
			basicPayload, err := section.exact(int(programLength))
			if err != nil {
				return err
			}
			writeBlock(mem, addressStartOfBasicProgram, basicPayload)

			var endAddr int
			if programLength > 0 {
				endAddr = addressStartOfBasicProgram + int(programLength) - 1
			} else {
				endAddr = addressStartOfBasicProgram - 1
			}
			if programLength > 0 {
				writeBasicTrailer(mem, endAddr)
			}
			program.BasicArea = true
		case sectionPBIN:
			if binarySections >= maxBinarySections {
				continue
			}
			startAddr, err := section.u32()
			if err != nil {
				return err
			}
			dataLength, err := section.u32()
			if err != nil {
				return err
			}
			if err := validateBounds(int(startAddr), int(dataLength)); err != nil {
				return err
			}
			binPayload, err := section.exact(int(dataLength))
			if err != nil {
				return err
			}
			writeBlock(mem, uint16(startAddr), binPayload)
			comment, err := section.str(maxCommentLength)
			if err != nil {
				return err
			}
			program.addRegion(uint16(startAddr), uint16(int(startAddr)+int(dataLength)-1), comment)
			binarySections++
		case sectionCMNT:
			comment, err := section.str(maxCommentLength)
			if err != nil {
				return err
			}
			program.Comment = comment
		default:
			// Unknown section IDs are skipped, not a format error.
		}
	}
	return nil
}
