package coil

// Compatible reports whether a value of type src can be used where dst is
// expected without an explicit conversion: equal types; same-signedness
// integer widening; float widening; or a platform type paired with its
// concrete equivalent under the current word-size mapping.
func Compatible(src, dst Type) bool {
	if src == dst {
		return true
	}

	srcMain := src.MainType()
	dstMain := dst.MainType()

	if srcMain == TypePlatformInt && (dstMain == TypeI8 || dstMain == TypeI16 || dstMain == TypeI32 || dstMain == TypeI64) {
		return src.Size() <= dst.Size()
	}
	if srcMain == TypePlatformUnt && (dstMain == TypeU8 || dstMain == TypeU16 || dstMain == TypeU32 || dstMain == TypeU64) {
		return src.Size() <= dst.Size()
	}
	if srcMain == TypePlatformFP && (dstMain == TypeF16 || dstMain == TypeF32 || dstMain == TypeF64 || dstMain == TypeF128) {
		return src.Size() <= dst.Size()
	}

	if src.IsSignedInteger() && dst.IsSignedInteger() {
		return src.Size() <= dst.Size()
	}
	if src.IsUnsignedInteger() && dst.IsUnsignedInteger() {
		return src.Size() <= dst.Size()
	}
	if src.IsFloat() && dst.IsFloat() {
		return src.Size() <= dst.Size()
	}

	return false
}

// CanConvert reports whether src can be converted to dst via an explicit
// conversion instruction: a superset of Compatible that also admits
// int-to-float, float-to-int, and signed-to-unsigned (or vice versa)
// conversions.
func CanConvert(src, dst Type) bool {
	if Compatible(src, dst) {
		return true
	}
	if src.IsInteger() && dst.IsFloat() {
		return true
	}
	if src.IsFloat() && dst.IsInteger() {
		return true
	}
	if src.IsInteger() && dst.IsInteger() {
		return true
	}
	return false
}
