// Package serialization provides the binary weights format used to save and
// load trained pipeline components.
//
// A weights file is laid out as:
//
//	Format Structure:
//	  [64 bytes: Fixed header]
//	    0x00-0x03: Magic "NERW"
//	    0x04-0x07: Version (uint32 LE)
//	    0x08-0x0B: Flags (uint32 LE)
//	    0x0C-0x0F: Reserved
//	    0x10-0x17: Header size (uint64 LE)
//	    0x18-0x1F: Data size (uint64 LE)
//	    0x20-0x3F: SHA-256 checksum of the data section
//	  [Header: JSON metadata]
//	  [Tensor data: raw little-endian bytes, 64-byte aligned]
//
// Supported data types are float32 (weights) and uint64 (feature hashes).
//
// Example usage:
//
//	// Save
//	keys, values := weights.StateDict()
//	w, err := serialization.NewWriter("ner/model.nerw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//	err = w.WriteTensors([]serialization.Tensor{
//	    serialization.Uint64Tensor("W.keys", []int{len(keys)}, keys),
//	    serialization.Float32Tensor("W.values", []int{len(keys), width}, values),
//	}, "EntityRecognizer", nil)
//
//	// Load
//	r, err := serialization.NewReader("ner/model.nerw")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	t, err := r.ReadTensor("W.keys")
package serialization
