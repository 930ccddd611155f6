package codec

// The functions below select the alphabet by name on every call.
// An unknown name fails with ErrInvalidAlphabet before the input is looked at.

// Encode encodes data with the named alphabet.
func Encode(data []byte, name string) (string, error) {
	c, err := ForName(name)
	if err != nil {
		return "", err
	}
	return c.Encode(data), nil
}

// EncodeChecked encodes data and its checksum with the named alphabet.
func EncodeChecked(data []byte, name string) (string, error) {
	c, err := ForName(name)
	if err != nil {
		return "", err
	}
	return c.EncodeChecked(data), nil
}

// EncodeVersioned encodes the version, data and their checksum with the named alphabet.
func EncodeVersioned(data []byte, version byte, name string) (string, error) {
	c, err := ForName(name)
	if err != nil {
		return "", err
	}
	return c.EncodeVersioned(version, data), nil
}

// Decode decodes text with the named alphabet.
func Decode(text, name string) ([]byte, error) {
	c, err := ForName(name)
	if err != nil {
		return nil, err
	}
	return c.Decode(text)
}

// DecodeChecked decodes checksummed text with the named alphabet.
func DecodeChecked(text, name string) ([]byte, error) {
	c, err := ForName(name)
	if err != nil {
		return nil, err
	}
	return c.DecodeChecked(text)
}

// DecodeVersioned decodes versioned text with the named alphabet.
// The embedded version must equal versionHint.
func DecodeVersioned(text string, versionHint byte, name string) (byte, []byte, error) {
	c, err := ForName(name)
	if err != nil {
		return 0, nil, err
	}
	payload, err := c.DecodeVersionedExpect(text, versionHint)
	if err != nil {
		return 0, nil, err
	}
	return versionHint, payload, nil
}
