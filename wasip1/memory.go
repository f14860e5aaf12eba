package wasip1

import "encoding/binary"

// Memory is the linear-memory view the dispatcher decodes arguments from
// and encodes results into. It is deliberately small and re-acquired by
// the caller on every host-function invocation (never cached across
// calls) because a guest's memory.grow between calls may relocate the
// backing buffer (§5, §9).
type Memory interface {
	// Read returns the byteCount bytes at offset, or false if the range
	// falls outside the buffer.
	Read(offset, byteCount uint32) ([]byte, bool)
	// Write copies v into the buffer at offset, or returns false if the
	// range falls outside the buffer.
	Write(offset uint32, v []byte) bool
	ReadUint32Le(offset uint32) (uint32, bool)
	ReadUint64Le(offset uint32) (uint64, bool)
	WriteUint32Le(offset uint32, v uint32) bool
	WriteUint64Le(offset uint32, v uint64) bool
}

// Record sizes, in bytes (§4.1).
const (
	PrestatSize      = 8
	FdstatSize       = 24
	FilestatSize     = 64
	DirentSize       = 24
	CiovecSize       = 8
	SubscriptionSize = 48
	EventSize        = 32
)

// Prestat is the 8-byte record returned by fd_prestat_get:
//
//	tag:u8 (0 = dir) | pad:u24 | len:u32
type Prestat struct {
	Tag byte
	Len uint32
}

func (p Prestat) Marshal(mem Memory, offset uint32) bool {
	var buf [PrestatSize]byte
	buf[0] = p.Tag
	binary.LittleEndian.PutUint32(buf[4:], p.Len)
	return mem.Write(offset, buf[:])
}

// Fdstat is the 24-byte record returned by fd_fdstat_get:
//
//	filetype:u8 | pad:u8 | flags:u16 | pad:u32 | rights_base:u64 | rights_inheriting:u64
type Fdstat struct {
	Filetype          Filetype
	Flags             Fdflags
	RightsBase        Rights
	RightsInheriting  Rights
}

func (f Fdstat) Marshal(mem Memory, offset uint32) bool {
	var buf [FdstatSize]byte
	buf[0] = byte(f.Filetype)
	binary.LittleEndian.PutUint16(buf[2:], uint16(f.Flags))
	binary.LittleEndian.PutUint64(buf[8:], uint64(f.RightsBase))
	binary.LittleEndian.PutUint64(buf[16:], uint64(f.RightsInheriting))
	return mem.Write(offset, buf[:])
}

// Filestat is the 64-byte record returned by fd_filestat_get / path_filestat_get:
//
//	dev:u64 | ino:u64 | filetype:u8 | pad:u56 | nlink:u64 | size:u64 | atim:u64 | mtim:u64 | ctim:u64
type Filestat struct {
	Dev      uint64
	Ino      uint64
	Filetype Filetype
	Nlink    uint64
	Size     uint64
	Atim     Timestamp
	Mtim     Timestamp
	Ctim     Timestamp
}

func (f Filestat) Marshal(mem Memory, offset uint32) bool {
	var buf [FilestatSize]byte
	binary.LittleEndian.PutUint64(buf[0:], f.Dev)
	binary.LittleEndian.PutUint64(buf[8:], f.Ino)
	buf[16] = byte(f.Filetype)
	binary.LittleEndian.PutUint64(buf[24:], f.Nlink)
	binary.LittleEndian.PutUint64(buf[32:], f.Size)
	binary.LittleEndian.PutUint64(buf[40:], f.Atim)
	binary.LittleEndian.PutUint64(buf[48:], f.Mtim)
	binary.LittleEndian.PutUint64(buf[56:], f.Ctim)
	return mem.Write(offset, buf[:])
}

// Dirent is the fixed 24-byte header preceding each directory entry's raw
// name bytes:
//
//	next_cookie:u64 | ino:u64 | name_len:u32 | type:u8 | pad:u24
type Dirent struct {
	NextCookie Dircookie
	Ino        uint64
	NameLen    uint32
	Type       Filetype
}

func (d Dirent) Marshal(mem Memory, offset uint32) bool {
	var buf [DirentSize]byte
	binary.LittleEndian.PutUint64(buf[0:], d.NextCookie)
	binary.LittleEndian.PutUint64(buf[8:], d.Ino)
	binary.LittleEndian.PutUint32(buf[16:], d.NameLen)
	buf[20] = byte(d.Type)
	return mem.Write(offset, buf[:])
}

// Iovec is the {buf:u32, len:u32} pair shared by fd_read's iovec and
// fd_write's ciovec arrays.
type Iovec struct {
	Buf uint32
	Len uint32
}

// ReadIovecs decodes count consecutive 8-byte iovec/ciovec records
// starting at offset.
func ReadIovecs(mem Memory, offset, count uint32) ([]Iovec, bool) {
	out := make([]Iovec, count)
	for i := range out {
		b, ok := mem.Read(offset+uint32(i)*CiovecSize, CiovecSize)
		if !ok {
			return nil, false
		}
		out[i] = Iovec{
			Buf: binary.LittleEndian.Uint32(b[0:]),
			Len: binary.LittleEndian.Uint32(b[4:]),
		}
	}
	return out, true
}

// Subscription is a decoded poll_oneoff input record. Userdata is opaque
// and echoed back verbatim on the corresponding Event.
type Subscription struct {
	Userdata  uint64
	Type      Eventtype
	ClockID   Clockid
	Timeout   Timestamp
	Precision Timestamp
	Flags     Subclockflags
	FD        Fd
}

// UnmarshalSubscription decodes the 48-byte subscription record at offset.
//
// Layout: userdata:u64 | tag:u8 | pad:u56 then, per tag:
//   - clock (tag 0): clock_id:u32 | pad:u32 | timeout:u64 | precision:u64 | flags:u16
//   - fd_read/fd_write (tag 1/2): fd:u32
func UnmarshalSubscription(mem Memory, offset uint32) (Subscription, bool) {
	b, ok := mem.Read(offset, SubscriptionSize)
	if !ok {
		return Subscription{}, false
	}
	s := Subscription{
		Userdata: binary.LittleEndian.Uint64(b[0:]),
		Type:     Eventtype(b[8]),
	}
	body := b[8+8:]
	switch s.Type {
	case EVENTTYPE_CLOCK:
		s.ClockID = Clockid(binary.LittleEndian.Uint32(body[0:]))
		s.Timeout = binary.LittleEndian.Uint64(body[8:])
		s.Precision = binary.LittleEndian.Uint64(body[16:])
		s.Flags = Subclockflags(binary.LittleEndian.Uint16(body[24:]))
	case EVENTTYPE_FD_READ, EVENTTYPE_FD_WRITE:
		s.FD = binary.LittleEndian.Uint32(body[0:])
	}
	return s, true
}

// Event is an encoded poll_oneoff output record.
type Event struct {
	Userdata uint64
	Error    Errno
	Type     Eventtype
	FDFlags  Eventrwflags
	NBytes   uint64
}

// Marshal encodes the 32-byte event record:
//
//	userdata:u64 | error:u16 | type:u8 | pad:u8 | fd_readwrite{nbytes:u64, flags:u16, pad:u48}
func (e Event) Marshal(mem Memory, offset uint32) bool {
	var buf [EventSize]byte
	binary.LittleEndian.PutUint64(buf[0:], e.Userdata)
	binary.LittleEndian.PutUint16(buf[8:], uint16(e.Error))
	buf[10] = byte(e.Type)
	binary.LittleEndian.PutUint64(buf[16:], e.NBytes)
	binary.LittleEndian.PutUint16(buf[24:], uint16(e.FDFlags))
	return mem.Write(offset, buf[:])
}

// ReadString decodes a length-prefixed UTF-8 string: ptr and len are
// passed separately by the caller (the ABI never NUL-terminates guest
// strings).
func ReadString(mem Memory, ptr, length uint32) (string, bool) {
	b, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(b), true
}
