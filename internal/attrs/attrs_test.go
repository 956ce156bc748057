// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrList_Set(t *testing.T) {
	tests := []struct {
		name    string
		initial AttrList
		value   string
		want    AttrList
		wantErr bool
	}{
		{
			name:  "single key",
			value: "image",
			want:  AttrList{{Key: "image", Include: true, OutputKey: "image"}},
		},
		{
			name:  "nested key uses last segment",
			value: "coords.lat",
			want:  AttrList{{Key: "coords.lat", Include: true, OutputKey: "lat"}},
		},
		{
			name:  "output key and transform",
			value: "caption:title:u",
			want:  AttrList{{Key: "caption", Include: true, OutputKey: "title", TransformSpec: "u"}},
		},
		{
			name:  "hidden",
			value: "!date",
			want:  AttrList{{Key: "date", Include: false, OutputKey: "date"}},
		},
		{
			name:  "global transform",
			value: "*::l",
			want:  AttrList{{Key: "*", Include: false, OutputKey: "*", TransformSpec: "l"}},
		},
		{
			name:    "update existing in place",
			initial: AttrList{{Key: "index", Include: true, OutputKey: "index"}, {Key: "date", Include: true, OutputKey: "date"}},
			value:   "index:i",
			want:    AttrList{{Key: "index", Include: true, OutputKey: "i"}, {Key: "date", Include: true, OutputKey: "date"}},
		},
		{
			name:  "star alone is noop",
			value: "*",
			want:  nil,
		},
		{
			name:    "empty entry",
			value:   "image,,date",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			al := tt.initial
			err := al.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, al)
		})
	}
}

func TestAttr_Transform(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		input interface{}
		env   map[string]string
		want  interface{}
	}{
		{name: "no spec", spec: "", input: "Earth", want: "Earth"},
		{name: "lower", spec: "l", input: "Earth", want: "earth"},
		{name: "upper", spec: "U", input: "Earth", want: "EARTH"},
		{name: "last case wins", spec: "u,l", input: "Earth", want: "earth"},
		{name: "truncate", spec: "5", input: "epic_1b_20240301", want: "epic_"},
		{name: "elide", spec: "-10", input: "epic_1b_20240301", want: "epic..0301"},
		{name: "short enough", spec: "50", input: "epic", want: "epic"},
		{name: "non string", spec: "u", input: 42.0, want: 42.0},
		{
			name:  "local time",
			spec:  "t",
			input: "2024-03-01 12:00:00",
			env:   map[string]string{"TZ": "America/New_York"},
			want:  "2024-03-01 07:00:00 EST",
		},
		{
			name:  "time without tz untouched",
			spec:  "t",
			input: "2024-03-01 12:00:00",
			env:   map[string]string{"TZ": ""},
			want:  "2024-03-01 12:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			a := Attr{TransformSpec: tt.spec}
			assert.Equal(t, tt.want, a.Transform(tt.input))
		})
	}
}

func TestAttrList_SetGlobalTransformSpec(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("image,caption::u,*::l"))
	al.SetGlobalTransformSpec()

	assert.Equal(t, "l,", al[0].TransformSpec)
	assert.Equal(t, "l,u", al[1].TransformSpec)

	a := al[1]
	assert.Equal(t, "ABC", a.Transform("abc"))
}

func TestAttrList_StringAndIncluded(t *testing.T) {
	var al AttrList
	require.NoError(t, al.Set("index,!date,image:img:10"))

	assert.Equal(t, "index:index:,date:date:,image:img:10", al.String())
	assert.Len(t, al.Included(), 2)
	assert.Equal(t, "list", al.Type())
}
