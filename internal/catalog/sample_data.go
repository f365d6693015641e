package catalog

import "github.com/partscout/partscout/pkg/types"

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// SampleParts returns the built-in demo catalog. It seeds the local
// provider and keeps the engine usable with no API keys configured.
func SampleParts() []types.Part {
	return []types.Part{
		{
			PartNumber:   "A000066",
			Manufacturer: "Arduino",
			Description:  "Arduino Uno R3 Microcontroller Board",
			Category:     "Development Boards",
			Price:        floatPtr(25.00),
			Stock:        intPtr(150),
			DatasheetURL: "https://store.arduino.cc/products/arduino-uno-rev3",
			Specifications: map[string]string{
				"Voltage":      "5V",
				"Digital Pins": "14",
				"Analog Pins":  "6",
			},
		},
		{
			PartNumber:   "LM358N",
			Manufacturer: "Texas Instruments",
			Description:  "LM358 Dual Operational Amplifier",
			Category:     "Amplifiers",
			Price:        floatPtr(0.50),
			Stock:        intPtr(5000),
			DatasheetURL: "https://www.ti.com/lit/ds/symlink/lm358.pdf",
			Specifications: map[string]string{
				"Supply Voltage": "3V to 32V",
				"Input Offset":   "2mV",
				"Package":        "DIP-8",
			},
		},
		{
			PartNumber:   "CF14JT10K0",
			Manufacturer: "Stackpole Electronics",
			Description:  "10k Ohm Resistor 1/4W 5%",
			Category:     "Resistors",
			Price:        floatPtr(0.10),
			Stock:        intPtr(10000),
			Specifications: map[string]string{
				"Resistance": "10k Ohm",
				"Power":      "1/4W",
				"Tolerance":  "5%",
			},
		},
		{
			PartNumber:   "ESP32-WROOM-32",
			Manufacturer: "Espressif",
			Description:  "ESP32 WiFi & Bluetooth Module",
			Category:     "Wireless Modules",
			Price:        floatPtr(8.50),
			Stock:        intPtr(200),
			Specifications: map[string]string{
				"WiFi":      "802.11 b/g/n",
				"Bluetooth": "4.2",
				"CPU":       "Dual-core 240MHz",
			},
		},
		{
			PartNumber:   "2N3904",
			Manufacturer: "ON Semiconductor",
			Description:  "NPN General Purpose Transistor",
			Category:     "Transistors",
			Price:        floatPtr(0.25),
			Stock:        intPtr(2500),
			Specifications: map[string]string{
				"Type":    "NPN",
				"Vce":     "40V",
				"Ic":      "200mA",
				"Package": "TO-92",
			},
		},
	}
}
