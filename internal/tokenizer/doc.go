// Package tokenizer splits raw text into word tokens for the entity recognizer.
//
// Two tokenizers live here:
//   - Word: rule-based English word tokenizer that keeps byte offsets into
//     the source text, so entity character spans can be mapped onto tokens
//   - TikToken: BPE subword encoder (cl100k_base, p50k_base) used to derive
//     subword features for each word token
//
// Example usage:
//
//	tok := tokenizer.NewWord()
//	for _, t := range tok.Tokenize("I studied B.Sc. at Ryerson University") {
//	    fmt.Println(t.Idx, t.Text)
//	}
//
//	// Optional subword pieces for a word.
//	enc, err := tokenizer.NewTikToken("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ids, err := enc.Encode("University")
package tokenizer
