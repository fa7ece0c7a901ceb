package api

// ReservedKeys lists retired wire keys per message type. A retired key is never assigned to a
// new field: old peers may still send it with its old meaning.
var ReservedKeys = map[string][]int{
	"CommonBuildOptions": {5},
	"BuildRequest":       {7},
	"TestRequest":        {8, 9},
	"AqueryRequest":      {6, 7},
	"StatusResponse":     {9, 10},
	"AqueryResponse":     {3, 4},
}
