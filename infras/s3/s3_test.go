package s3_test

import (
	"testing"

	"quickcourt/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObject_Key(t *testing.T) {
	object := s3.Object{Directory: "venues/v-1", FileName: "cover.png"}

	assert.Equal(t, "venues/v-1/cover.png", object.Key())
}

func TestObjectKeyFromURL(t *testing.T) {
	const (
		publicDomain = "https://cdn.quickcourt.test/"
		apiEndpoint  = "https://s3.quickcourt.test"
		bucket       = "assets"
	)

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "public url",
			url:  s3.PublicURL(publicDomain, "venues/v-1/cover.png"),
			want: "venues/v-1/cover.png",
		},
		{
			name: "path style api url",
			url:  "https://s3.quickcourt.test/assets/venues/v-1/cover.png",
			want: "venues/v-1/cover.png",
		},
		{
			name: "foreign url",
			url:  "https://example.com/cover.png",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.ObjectKeyFromURL(publicDomain, apiEndpoint, bucket, tt.url))
		})
	}
}
