package format

type (
	CompressionType uint8
	ImageFormat     uint8
	SizeMode        uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ImagePNG       ImageFormat = 0x1 // ImagePNG represents lossless PNG output.
	ImageBMP       ImageFormat = 0x2 // ImageBMP represents uncompressed 24-bit BMP output.
	ImageContainer ImageFormat = 0x3 // ImageContainer represents the native pxg container.

	SizeAdaptive SizeMode = 0x1 // SizeAdaptive computes the minimal grid for the payload.
	SizeAuto     SizeMode = 0x2 // SizeAuto picks a square preset by payload size.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (f ImageFormat) String() string {
	switch f {
	case ImagePNG:
		return "PNG"
	case ImageBMP:
		return "BMP"
	case ImageContainer:
		return "Container"
	default:
		return "Unknown"
	}
}

func (m SizeMode) String() string {
	switch m {
	case SizeAdaptive:
		return "Adaptive"
	case SizeAuto:
		return "Auto"
	default:
		return "Unknown"
	}
}

// PayloadKind is the advisory content type sniffed from decoded bytes.
// The zero value is PayloadBinary.
type PayloadKind uint8

const (
	PayloadBinary PayloadKind = iota
	PayloadText
	PayloadZip
	PayloadDoc
	PayloadPDF
	PayloadPNG
	PayloadJPEG
	PayloadBMP
	PayloadGIF
)

// Ext returns the filename extension conventionally used for the kind,
// without the leading dot.
func (k PayloadKind) Ext() string {
	switch k {
	case PayloadText:
		return "txt"
	case PayloadZip:
		return "zip"
	case PayloadDoc:
		return "doc"
	case PayloadPDF:
		return "pdf"
	case PayloadPNG:
		return "png"
	case PayloadJPEG:
		return "jpg"
	case PayloadBMP:
		return "bmp"
	case PayloadGIF:
		return "gif"
	default:
		return "bin"
	}
}

func (k PayloadKind) String() string {
	switch k {
	case PayloadText:
		return "Text"
	case PayloadZip:
		return "Zip"
	case PayloadDoc:
		return "Doc"
	case PayloadPDF:
		return "PDF"
	case PayloadPNG:
		return "PNG"
	case PayloadJPEG:
		return "JPEG"
	case PayloadBMP:
		return "BMP"
	case PayloadGIF:
		return "GIF"
	default:
		return "Binary"
	}
}
