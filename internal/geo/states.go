package geo

// StateEntry holds one state/UT with its name variants and the major towns
// whose mention implies it.
type StateEntry struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Cities  []string `yaml:"cities,omitempty"`
}

// defaultStates is the built-in alias table covering every Indian state and
// union territory. Two-letter abbreviations (AP, UP, MP) are deliberately
// absent: they collide with ordinary English and agency names.
var defaultStates = []StateEntry{
	{Name: "Andhra Pradesh", Cities: []string{"Visakhapatnam", "Vizag", "Amaravati", "Vijayawada", "Tirupati", "Sri City", "Kakinada", "Anantapur", "Nellore"}},
	{Name: "Arunachal Pradesh", Cities: []string{"Itanagar"}},
	{Name: "Assam", Cities: []string{"Guwahati", "Dibrugarh", "Jorhat", "Silchar", "Numaligarh"}},
	{Name: "Bihar", Cities: []string{"Patna", "Gaya", "Muzaffarpur", "Bhagalpur", "Barauni"}},
	{Name: "Chhattisgarh", Aliases: []string{"Chattisgarh"}, Cities: []string{"Raipur", "Bhilai", "Bilaspur", "Korba", "Raigarh"}},
	{Name: "Goa", Cities: []string{"Panaji", "Verna", "Mormugao", "Vasco da Gama"}},
	{Name: "Gujarat", Cities: []string{"Ahmedabad", "Gandhinagar", "Surat", "Vadodara", "Rajkot", "Dholera", "Sanand", "Dahej", "Mundra", "Jamnagar", "Hazira", "Kutch", "Bharuch", "Becharaji"}},
	{Name: "Haryana", Cities: []string{"Gurugram", "Gurgaon", "Faridabad", "Manesar", "Panipat", "Sonipat", "Hisar", "Kharkhoda"}},
	{Name: "Himachal Pradesh", Cities: []string{"Shimla", "Baddi", "Solan", "Una", "Nalagarh"}},
	{Name: "Jharkhand", Cities: []string{"Ranchi", "Jamshedpur", "Dhanbad", "Bokaro"}},
	{Name: "Karnataka", Cities: []string{"Bengaluru", "Bangalore", "Mysuru", "Mysore", "Hubballi", "Hubli", "Mangaluru", "Mangalore", "Tumakuru", "Tumkur", "Belagavi", "Ballari", "Dharwad"}},
	{Name: "Kerala", Cities: []string{"Thiruvananthapuram", "Kochi", "Cochin", "Kozhikode", "Kannur", "Palakkad", "Vizhinjam"}},
	{Name: "Madhya Pradesh", Cities: []string{"Bhopal", "Indore", "Gwalior", "Jabalpur", "Ujjain", "Pithampur"}},
	{Name: "Maharashtra", Cities: []string{"Mumbai", "Navi Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Chhatrapati Sambhajinagar", "Thane", "Chakan", "Talegaon", "Ranjangaon", "Gadchiroli"}},
	{Name: "Manipur", Cities: []string{"Imphal"}},
	{Name: "Meghalaya", Cities: []string{"Shillong"}},
	{Name: "Mizoram", Cities: []string{"Aizawl"}},
	{Name: "Nagaland", Cities: []string{"Kohima", "Dimapur"}},
	{Name: "Odisha", Aliases: []string{"Orissa"}, Cities: []string{"Bhubaneswar", "Cuttack", "Paradip", "Rourkela", "Jharsuguda", "Angul", "Dhamra", "Gopalpur"}},
	{Name: "Punjab", Cities: []string{"Ludhiana", "Amritsar", "Mohali", "Jalandhar", "Bathinda", "Rajpura"}},
	{Name: "Rajasthan", Cities: []string{"Jaipur", "Jodhpur", "Udaipur", "Kota", "Bhiwadi", "Neemrana", "Barmer"}},
	{Name: "Sikkim", Cities: []string{"Gangtok"}},
	{Name: "Tamil Nadu", Aliases: []string{"Tamilnadu"}, Cities: []string{"Chennai", "Coimbatore", "Madurai", "Hosur", "Tiruchirappalli", "Trichy", "Salem", "Sriperumbudur", "Thoothukudi", "Tuticorin", "Krishnagiri", "Ranipet"}},
	{Name: "Telangana", Cities: []string{"Hyderabad", "Warangal", "Zaheerabad", "Sangareddy"}},
	{Name: "Tripura", Cities: []string{"Agartala"}},
	{Name: "Uttar Pradesh", Cities: []string{"Lucknow", "Noida", "Greater Noida", "Ghaziabad", "Kanpur", "Varanasi", "Agra", "Prayagraj", "Jewar", "Meerut", "Gorakhpur"}},
	{Name: "Uttarakhand", Aliases: []string{"Uttaranchal"}, Cities: []string{"Dehradun", "Haridwar", "Rudrapur", "Pantnagar"}},
	{Name: "West Bengal", Aliases: []string{"Bengal"}, Cities: []string{"Kolkata", "Calcutta", "Howrah", "Durgapur", "Haldia", "Siliguri", "Kharagpur"}},
	{Name: "Delhi", Aliases: []string{"New Delhi", "NCT of Delhi"}},
	{Name: "Jammu and Kashmir", Aliases: []string{"Jammu & Kashmir", "J&K", "Kashmir"}, Cities: []string{"Jammu", "Srinagar", "Katra"}},
	{Name: "Ladakh", Cities: []string{"Leh", "Kargil"}},
	{Name: "Puducherry", Aliases: []string{"Pondicherry"}},
	{Name: "Chandigarh"},
	{Name: "Andaman and Nicobar Islands", Aliases: []string{"Andaman"}, Cities: []string{"Port Blair"}},
	{Name: "Dadra and Nagar Haveli and Daman and Diu", Aliases: []string{"Dadra and Nagar Haveli", "Daman and Diu"}, Cities: []string{"Silvassa", "Daman"}},
	{Name: "Lakshadweep", Cities: []string{"Kavaratti"}},
}
