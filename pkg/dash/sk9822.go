package dash

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/itohio/godash/pkg/config"
)

// SK9822 drives an SK9822/APA102 strip over SPI. The wire format per the
// SK9822 datasheet: a 4-byte zero start marker, then one brightness+BGR
// frame per segment, then an end marker to latch the chain.
type SK9822 struct {
	segments   int
	brightness uint8

	mu   sync.Mutex
	port spi.PortCloser
	conn spi.Conn
	buf  []byte
}

// NewSK9822 opens the configured SPI port and prepares the strip driver.
func NewSK9822(cfg *config.StripConfig) (*SK9822, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", cfg.SPIPort, err)
	}

	conn, err := port.Connect(physic.Frequency(cfg.SPIHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to connect to SPI port %s: %w", cfg.SPIPort, err)
	}

	return &SK9822{
		segments:   cfg.Segments(),
		brightness: uint8(cfg.Brightness) & 0x1F,
		port:       port,
		conn:       conn,
	}, nil
}

// SendFrame lights the leading segments of the strip with the given colors.
func (s *SK9822) SendFrame(colors []Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = appendFrame(s.buf[:0], colors, s.brightness)
	return s.tx()
}

// Clear turns every segment off.
func (s *SK9822) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = appendClear(s.buf[:0], s.segments)
	return s.tx()
}

// Close releases the SPI port.
func (s *SK9822) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}

func (s *SK9822) tx() error {
	if err := s.conn.Tx(s.buf, nil); err != nil {
		return fmt.Errorf("strip SPI write failed: %w", err)
	}
	return nil
}

// appendStart appends the 4-byte start-of-frame marker.
func appendStart(dst []byte) []byte {
	return append(dst, 0x00, 0x00, 0x00, 0x00)
}

// appendEnd appends the end-of-frame marker that latches the chain.
func appendEnd(dst []byte) []byte {
	return append(dst, 0xFF, 0xFF, 0xFF, 0xFF)
}

// appendLED appends one segment frame. The leading byte carries the 0b111
// marker plus the 5-bit global brightness; colors follow in BGR order.
func appendLED(dst []byte, c Color, brightness uint8) []byte {
	return append(dst, 0xE0|brightness, c.B, c.G, c.R)
}

// appendFrame builds a full strip update for the given color sequence.
func appendFrame(dst []byte, colors []Color, brightness uint8) []byte {
	dst = appendStart(dst)
	for _, c := range colors {
		dst = appendLED(dst, c, brightness)
	}
	return appendEnd(dst)
}

// appendClear builds an all-off update covering every segment. Off segments
// keep the brightness marker bits but zero color, so the chain still clocks
// a complete frame through.
func appendClear(dst []byte, segments int) []byte {
	dst = appendStart(dst)
	for i := 0; i < segments; i++ {
		dst = append(dst, 0xE0, 0x00, 0x00, 0x00)
	}
	return appendEnd(dst)
}
