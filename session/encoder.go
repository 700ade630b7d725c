package session

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

const sessionFormatVersionCurrent = 1

const maxTokenLen = 4096

var (
	errFieldTooLong   = errors.New("session field too long")
	errInvalidVersion = errors.New("invalid session version")
)

// Encode serialises s into the versioned binary layout:
//
//	version(1) | userLen(1) user | tokenLen(2) token | createdAt(8) | expiresAt(8)
//
// SessionID is not encoded; it is the Redis key suffix.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, errors.New("nil session")
	}
	if len(s.UserID) > 255 {
		return nil, errFieldTooLong
	}
	if len(s.AccessToken) > maxTokenLen {
		return nil, errFieldTooLong
	}

	var buf bytes.Buffer
	buf.Grow(1 + 1 + len(s.UserID) + 2 + len(s.AccessToken) + 16)

	buf.WriteByte(sessionFormatVersionCurrent)

	buf.WriteByte(byte(len(s.UserID)))
	buf.WriteString(s.UserID)

	if err := binary.Write(&buf, binary.BigEndian, uint16(len(s.AccessToken))); err != nil {
		return nil, err
	}
	buf.WriteString(s.AccessToken)

	if err := binary.Write(&buf, binary.BigEndian, s.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, s.ExpiresAt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses data produced by [Encode]. Trailing bytes are rejected.
func Decode(data []byte) (*Session, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != sessionFormatVersionCurrent {
		return nil, errInvalidVersion
	}

	s := &Session{}

	userLen, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	userID := make([]byte, userLen)
	if _, err := io.ReadFull(reader, userID); err != nil {
		return nil, err
	}
	s.UserID = string(userID)

	var tokenLen uint16
	if err := binary.Read(reader, binary.BigEndian, &tokenLen); err != nil {
		return nil, err
	}
	if int(tokenLen) > maxTokenLen {
		return nil, errFieldTooLong
	}
	token := make([]byte, tokenLen)
	if _, err := io.ReadFull(reader, token); err != nil {
		return nil, err
	}
	s.AccessToken = string(token)

	if err := binary.Read(reader, binary.BigEndian, &s.CreatedAt); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &s.ExpiresAt); err != nil {
		return nil, err
	}

	if reader.Len() != 0 {
		return nil, errors.New("trailing session bytes")
	}

	return s, nil
}
