package response

import (
	"time"

	"github.com/jinzhu/copier"
)

// Timestamps leave the API as unix seconds.
var copyOpts = copier.Option{
	DeepCopy: true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).Unix(), nil
			},
		},
	},
}

func copyInto[T any](from any) (*T, error) {
	var to T
	if err := copier.CopyWithOption(&to, from, copyOpts); err != nil {
		return nil, err
	}
	return &to, nil
}
