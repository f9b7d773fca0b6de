package encoding

import "rowdb/internal/schema"

// SerializeRow writes src into the first schema.ROW_SIZE bytes of dst.
// Field lengths are not validated here.
func SerializeRow(src schema.Row, dst []byte) {
	dst = dst[:schema.ROW_SIZE]
	PutUint32(dst[schema.ID_OFFSET:schema.ID_OFFSET+schema.ID_SIZE], src.ID)
	PutFixedString(dst[schema.USERNAME_OFFSET:schema.USERNAME_OFFSET+schema.USERNAME_SIZE], src.Username)
	PutFixedString(dst[schema.EMAIL_OFFSET:schema.EMAIL_OFFSET+schema.EMAIL_SIZE], src.Email)
}

func DeserializeRow(src []byte) schema.Row {
	src = src[:schema.ROW_SIZE]
	return schema.Row{
		ID:       Uint32(src[schema.ID_OFFSET : schema.ID_OFFSET+schema.ID_SIZE]),
		Username: FixedString(src[schema.USERNAME_OFFSET : schema.USERNAME_OFFSET+schema.USERNAME_SIZE]),
		Email:    FixedString(src[schema.EMAIL_OFFSET : schema.EMAIL_OFFSET+schema.EMAIL_SIZE]),
	}
}
