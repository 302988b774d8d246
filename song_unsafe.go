package organya

import (
	"unsafe"
)

func songSize(s *song) uint {
	memoryUsage := int(unsafe.Sizeof(song{}))
	for i := range s.channels {
		memoryUsage += cap(s.channels[i].events) * int(unsafe.Sizeof(beatEvent{}))
	}
	return uint(memoryUsage)
}
