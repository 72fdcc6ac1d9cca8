// Package imaging is the codec engine: it decodes image files into owned
// Handles and encodes Handles back to bytes.
//
// # Handles
//
// A Handle carries the pixel data, the format the image will be written as,
// and the dimensions seen at decode time. Transformations never modify a
// Handle in place; they Derive a new one, so the decode-time dimensions are
// always available at the end of a pipeline.
//
// # Formats
//
// Decoding covers BMP, GIF, JPEG, PNG, TIFF and WEBP. Encoding covers all of
// them except WEBP. Format names are upper case ("JPEG"); JPG and TIF are
// reported as separate names so that file extensions resolve directly.
//
// # Thread Safety
//
// StdCodec is stateless and safe for concurrent use. A Handle has a single
// owner and is not safe for concurrent use.
package imaging
