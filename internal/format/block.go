package format

// Block pointer arithmetic. A block pointer (bp) is always the payload
// address; the header sits one word before it.
//
//	       hdr            payload ...                ftr
//	  bp-8 [size|pa|a] bp [next][prev] ...   bp+size-16 [size|pa|a]
//	                                         bp+size-8  next block hdr

// HeaderOf returns the address of the header word of bp.
func HeaderOf(bp Addr) Addr {
	return bp - WordSize
}

// FooterOf returns the address of the footer word of bp, using the size
// currently stored in its header.
func FooterOf(b []byte, bp Addr) Addr {
	return bp + Addr(BlockSize(b, bp)) - DoubleSize
}

// BlockSize returns the size recorded in bp's header.
func BlockSize(b []byte, bp Addr) int {
	return int(ReadU64(b, HeaderOf(bp)) &^ FlagMask)
}

// Header decodes bp's header.
func Header(b []byte, bp Addr) Tag {
	return ReadTag(b, HeaderOf(bp))
}

// NextBlock returns the payload address of the block following bp.
func NextBlock(b []byte, bp Addr) Addr {
	return bp + Addr(BlockSize(b, bp))
}

// PrevBlock returns the payload address of the block preceding bp, read
// from that block's footer. Only valid when bp's PrevAlloc bit is clear:
// allocated blocks do not maintain a footer.
func PrevBlock(b []byte, bp Addr) Addr {
	prevSize := ReadU64(b, bp-DoubleSize) &^ FlagMask
	return bp - Addr(prevSize)
}

// NextLinkOf returns the address of the free-list successor link of bp.
func NextLinkOf(bp Addr) Addr {
	return bp
}

// PrevLinkOf returns the address of the free-list predecessor link of bp.
func PrevLinkOf(bp Addr) Addr {
	return bp + WordSize
}

// SetHeader writes t into bp's header.
func SetHeader(b []byte, bp Addr, t Tag) {
	PutTag(b, HeaderOf(bp), t)
}

// SetHeaderFooter writes t into bp's header and into the footer slot implied
// by t.Size. Used whenever a block becomes (or stays) free.
func SetHeaderFooter(b []byte, bp Addr, t Tag) {
	PutTag(b, HeaderOf(bp), t)
	PutTag(b, bp+Addr(t.Size)-DoubleSize, t)
}

// UsableSize returns the number of payload bytes an allocated block of the
// given size offers: everything but the header word, since an allocated
// block's footer slot belongs to the client.
func UsableSize(blockSize int) int {
	if blockSize < WordSize {
		return 0
	}
	return blockSize - WordSize
}
